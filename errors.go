package redlux

// MissingAudioTrackError represents an error indicating that the container
// holds no AAC audio track.
type MissingAudioTrackError struct {
}

// Error returns the error message for MissingAudioTrackError.
func (MissingAudioTrackError) Error() string {
	return "no AAC audio track in container"
}
