package ipnidb

var (
	// Version of the ipnidb application, set by the build.
	Version = "v0.1.0"
	// Build timestamp, set by the build.
	Build = "n/a"
)
