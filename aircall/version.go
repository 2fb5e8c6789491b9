package aircall

// Version is the current SDK version, reported in the User-Agent header.
const Version = "0.1.0"
