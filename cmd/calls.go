package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Riprock/aircall-api/aircall"
	"github.com/Riprock/aircall-api/filter"
)

var (
	callDirection string
	callSinceDays int
)

// callsCmd groups the call subcommands
var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Browse and manage calls",
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calls matching the filter criteria",
	Long: `List calls from your Aircall workspace. Server-side narrowing uses the
--direction and --since flags; finer matching uses a client-side filter
expression, e.g. --filter 'Missed and Duration == 0'.`,
	RunE: runCallsList,
}

var callsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single call",
	Args:  cobra.ExactArgs(1),
	RunE:  runCallsGet,
}

var callsArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a call",
	Args:  cobra.ExactArgs(1),
	RunE:  runCallsArchive,
}

func init() {
	rootCmd.AddCommand(callsCmd)
	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsGetCmd)
	callsCmd.AddCommand(callsArchiveCmd)

	callsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	callsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	callsListCmd.Flags().StringVar(&callDirection, "direction", "", "only inbound or outbound calls")
	callsListCmd.Flags().IntVar(&callSinceDays, "since", 0, "only calls from the last N days")
	callsListCmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after N matching calls")
}

func runCallsList(cmd *cobra.Command, args []string) error {
	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	var callFilter *filter.Filter
	if expression != "" {
		callFilter, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Info().Str("filter", expression).Msg("Searching calls")
	}

	opts := &aircall.CallListOptions{
		Direction: callDirection,
		Order:     aircall.OrderDesc,
	}
	if callSinceDays > 0 {
		opts.From = time.Now().AddDate(0, 0, -callSinceDays)
	}

	it, err := client.Calls.List(opts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	matched := 0
	for it.Next(ctx) {
		call := it.Record()

		if callFilter != nil {
			ok, err := callFilter.MatchCall(call)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		printCall(call)
		matched++
		if limit > 0 && matched >= limit {
			break
		}
	}
	if err := it.Err(); err != nil {
		return err
	}

	if matched == 0 {
		fmt.Println("No calls found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\n%d calls shown.\n", matched)
	return nil
}

func printCall(call aircall.Call) {
	direction := "→"
	if call.IsInbound() {
		direction = "←"
	}
	fmt.Printf("• #%d %s %s (%s)", call.ID, direction, call.RawDigits, call.StartedTime().Format("2006-01-02 15:04"))
	if call.IsMissed() {
		fmt.Printf(" [MISSED]")
	}
	fmt.Println()

	if cfg.Safety.ShowDetails {
		if call.User != nil {
			fmt.Printf("  Agent: %s\n", call.User.Name)
		}
		if call.Contact != nil {
			fmt.Printf("  Contact: %s\n", call.Contact.FullName())
		}
		if len(call.Tags) > 0 {
			names := make([]string, 0, len(call.Tags))
			for _, tag := range call.Tags {
				names = append(names, tag.Name)
			}
			fmt.Printf("  Tags: %s\n", strings.Join(names, ", "))
		}
		if call.Duration > 0 {
			fmt.Printf("  Duration: %ds\n", call.Duration)
		}
	}
}

func runCallsGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid call ID %q", args[0])
	}

	call, err := client.Calls.Get(context.Background(), id)
	if err != nil {
		return err
	}

	printCall(*call)
	for _, comment := range call.Comments {
		fmt.Printf("  Note: %s\n", comment.Content)
	}
	return nil
}

func runCallsArchive(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid call ID %q", args[0])
	}

	if cfg.Safety.DryRun {
		fmt.Printf("[DRY RUN] Would archive call %d\n", id)
		return nil
	}

	if err := client.Calls.Archive(context.Background(), id); err != nil {
		return err
	}

	logger.Info().Int64("call_id", id).Msg("Successfully archived call")
	return nil
}
