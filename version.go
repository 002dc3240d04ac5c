package pulsenet

// Version is the release of the library and the pulsenet CLI.
const Version = "0.1.0"
