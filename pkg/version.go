package daybook

// Version of the daybook application.
const Version = "0.1.0"
