package cli

// Version is the running release. Release builds set it with
// -ldflags "-X github.com/Fepozopo/ditherforge/pkg/cli.Version=x.y.z".
var Version = "0.1.0"
