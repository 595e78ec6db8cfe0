package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Matches the storage service's VARCHAR(255) name column.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file display names.
	MaxFileNameLength = 255

	// DefaultLogMaxFiles is how many log files the terminal hosts keep.
	DefaultLogMaxFiles = 10
)
