package notify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Platform default sounds.
const (
	DefaultLinuxSound   = "/usr/share/sounds/freedesktop/stereo/complete.oga"
	DefaultMacOSSound   = "/System/Library/Sounds/Glass.aiff"
	DefaultWindowsSound = `C:\Windows\Media\Windows Notify System Generic.wav`
)

// ErrNoSoundFile means no playable sound file was resolved.
var ErrNoSoundFile = errors.New("no sound file")

// SoundResolver turns the configured sound file into a playable path.
type SoundResolver interface {
	ResolveSound(soundFile string) (string, error)
}

// PlatformSounds resolves custom sound files with a fallback to the
// platform's default sound.
type PlatformSounds struct {
	platform Platform
	logger   logrus.FieldLogger
}

// NewPlatformSounds creates a resolver for platform.
func NewPlatformSounds(platform Platform, logger logrus.FieldLogger) *PlatformSounds {
	return &PlatformSounds{platform: platform, logger: logger}
}

// DefaultSoundFile returns the built-in sound for a platform.
func DefaultSoundFile(p Platform) string {
	switch p {
	case PlatformPrimaryDesktop:
		return DefaultLinuxSound
	case PlatformSecondaryDesktop:
		return DefaultMacOSSound
	case PlatformBridgedHost:
		return DefaultWindowsSound
	default:
		return ""
	}
}

// ResolveSound implements SoundResolver.
func (r *PlatformSounds) ResolveSound(soundFile string) (string, error) {
	if validated := ValidateSoundFile(soundFile, r.logger); validated != "" {
		return validated, nil
	}

	def := DefaultSoundFile(r.platform)
	if def == "" {
		return "", fmt.Errorf("no default sound for platform %s", r.platform)
	}

	// The Windows default lives on the host drive and cannot be checked from WSL.
	if r.platform != PlatformBridgedHost {
		if _, err := os.Stat(def); err != nil {
			return "", fmt.Errorf("default sound %s: %w", def, err)
		}
	}
	return def, nil
}

// supportedAudioExtensions contains file extensions supported for custom sounds
var supportedAudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".aiff": true,
	".aif":  true,
	".ogg":  true,
	".oga":  true,
	".flac": true,
	".m4a":  true,
}

// ValidateSoundFile checks if the sound file exists and has a supported format.
// Returns the validated path to use (original if valid, or empty for fallback to default).
// If the file is invalid, logs a warning and returns empty string for fallback.
func ValidateSoundFile(soundFile string, logger logrus.FieldLogger) string {
	if soundFile == "" {
		return ""
	}

	warn := func(msg string, err error) {
		if logger == nil {
			return
		}
		entry := logger.WithField("sound_file", soundFile)
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn(msg)
	}

	info, err := os.Stat(soundFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			warn("Custom sound file not found, falling back to default", nil)
		} else {
			warn("Cannot access custom sound file, falling back to default", err)
		}
		return ""
	}

	if info.IsDir() {
		warn("Sound path is a directory, falling back to default", nil)
		return ""
	}

	ext := strings.ToLower(filepath.Ext(soundFile))
	if !supportedAudioExtensions[ext] {
		warn(fmt.Sprintf("Unsupported audio format '%s', falling back to default", ext), nil)
		return ""
	}

	return soundFile
}
