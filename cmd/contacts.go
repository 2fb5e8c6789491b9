package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Riprock/aircall-api/aircall"
	"github.com/Riprock/aircall-api/filter"
)

var (
	contactFirstName string
	contactLastName  string
	contactCompany   string
	contactPhones    []string
	contactEmails    []string
)

// contactsCmd groups the contact subcommands
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Browse and manage contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts matching the filter criteria",
	RunE:  runContactsList,
}

var contactsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contact",
	RunE:  runContactsCreate,
}

var contactsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsDelete,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsCreateCmd)
	contactsCmd.AddCommand(contactsDeleteCmd)

	contactsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	contactsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	contactsListCmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after N matching contacts")

	contactsCreateCmd.Flags().StringVar(&contactFirstName, "first-name", "", "contact first name")
	contactsCreateCmd.Flags().StringVar(&contactLastName, "last-name", "", "contact last name")
	contactsCreateCmd.Flags().StringVar(&contactCompany, "company", "", "contact company name")
	contactsCreateCmd.Flags().StringSliceVar(&contactPhones, "phone", nil, "phone number (repeatable)")
	contactsCreateCmd.Flags().StringSliceVar(&contactEmails, "email", nil, "email address (repeatable)")

	contactsDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
}

func runContactsList(cmd *cobra.Command, args []string) error {
	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	var contactFilter *filter.Filter
	if expression != "" {
		contactFilter, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Info().Str("filter", expression).Msg("Searching contacts")
	}

	it, err := client.Contacts.List(nil)
	if err != nil {
		return err
	}

	ctx := context.Background()
	matched := 0
	for it.Next(ctx) {
		contact := it.Record()

		if contactFilter != nil {
			ok, err := contactFilter.MatchContact(contact)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		printContact(contact)
		matched++
		if limit > 0 && matched >= limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		return err
	}

	if matched == 0 {
		fmt.Println("No contacts found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\n%d contacts shown.\n", matched)
	return nil
}

func printContact(contact aircall.Contact) {
	name := contact.FullName()
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("• #%d %s", contact.ID, name)
	if contact.IsShared {
		fmt.Printf(" [SHARED]")
	}
	fmt.Println()

	if cfg.Safety.ShowDetails {
		for _, phone := range contact.PhoneNumbers {
			fmt.Printf("  Phone: %s (%s)\n", phone.Value, phone.Label)
		}
		for _, email := range contact.Emails {
			fmt.Printf("  Email: %s (%s)\n", email.Value, email.Label)
		}
	}
}

func runContactsCreate(cmd *cobra.Command, args []string) error {
	contact := &aircall.Contact{
		FirstName:   contactFirstName,
		LastName:    contactLastName,
		CompanyName: contactCompany,
	}
	for _, phone := range contactPhones {
		contact.PhoneNumbers = append(contact.PhoneNumbers, aircall.ContactPhone{Label: "Work", Value: phone})
	}
	for _, email := range contactEmails {
		contact.Emails = append(contact.Emails, aircall.ContactEmail{Label: "Work", Value: email})
	}

	if cfg.Safety.DryRun {
		fmt.Printf("[DRY RUN] Would create contact %s\n", contact.FullName())
		return nil
	}

	created, err := client.Contacts.Create(context.Background(), contact)
	if err != nil {
		return err
	}

	logger.Info().Int64("contact_id", created.ID).Msg("Successfully created contact")
	printContact(*created)
	return nil
}

func runContactsDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact ID %q", args[0])
	}

	ctx := context.Background()
	contact, err := client.Contacts.Get(ctx, id)
	if err != nil {
		return err
	}

	if cfg.Safety.DryRun {
		fmt.Printf("[DRY RUN] Would delete contact %s (#%d)\n", contact.FullName(), contact.ID)
		return nil
	}

	if cfg.Safety.ConfirmDelete && !noConfirm {
		fmt.Printf("Delete contact %s (#%d)? [y/N]: ", contact.FullName(), contact.ID)
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
	}

	if err := client.Contacts.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("contact_id", id).Msg("Successfully deleted contact")
	return nil
}
