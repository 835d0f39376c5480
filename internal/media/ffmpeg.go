// filepath: internal/media/ffmpeg.go
package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"mediacatalog/internal/logging"
)

var (
	// ffmpegPath holds the validated path to the executable.
	ffmpegPath string
	// ffprobePath holds the validated path to the ffprobe executable.
	ffprobePath string
	// ffmpegCheckOnce ensures we only look for ffmpeg once.
	ffmpegCheckOnce sync.Once
)

// Initialize sets up the paths for the ffmpeg and ffprobe executables.
// It should be called once at startup.
func Initialize(ffmpegConfiguredPath string, ffprobeConfiguredPath string) {
	ffmpegCheckOnce.Do(func() {
		// --- FFmpeg Check ---
		if ffmpegConfiguredPath != "" {
			if _, err := os.Stat(ffmpegConfiguredPath); err == nil {
				logging.Log.Infof("Using configured FFmpeg path: %s", ffmpegConfiguredPath)
				ffmpegPath = ffmpegConfiguredPath
			} else {
				logging.Log.Warnf("Configured ffmpeg_path '%s' not found, falling back to system PATH.", ffmpegConfiguredPath)
			}
		}

		if ffmpegPath == "" { // Only check PATH if not configured
			path, err := exec.LookPath("ffmpeg")
			if err != nil {
				logging.Log.Warn("FFmpeg executable not found in configured path or system PATH.")
				logging.Log.Warn("Video poster frames will be DISABLED; video previews degrade to no preview.")
				ffmpegPath = ""
			} else {
				logging.Log.Infof("FFmpeg found in PATH: %s. Video poster frames enabled.", path)
				ffmpegPath = path
			}
		}

		// --- FFprobe Check ---
		if ffprobeConfiguredPath != "" {
			if _, err := os.Stat(ffprobeConfiguredPath); err == nil {
				logging.Log.Infof("Using configured FFprobe path: %s", ffprobeConfiguredPath)
				ffprobePath = ffprobeConfiguredPath
			} else {
				logging.Log.Warnf("Configured ffprobe_path '%s' not found, falling back to system PATH.", ffprobeConfiguredPath)
			}
		}

		if ffprobePath == "" { // Try alongside ffmpeg first
			if ffmpegPath != "" {
				probePath := strings.Replace(ffmpegPath, "ffmpeg", "ffprobe", 1)
				if _, err := os.Stat(probePath); err == nil {
					logging.Log.Infof("Found ffprobe alongside ffmpeg: %s", probePath)
					ffprobePath = probePath
				}
			}
		}

		if ffprobePath == "" { // Still not found? Check PATH explicitly.
			path, err := exec.LookPath("ffprobe")
			if err != nil {
				logging.Log.Warn("ffprobe executable not found. Video duration probing will be disabled.")
				ffprobePath = ""
			} else {
				logging.Log.Infof("ffprobe found in PATH: %s.", path)
				ffprobePath = path
			}
		}
	})
}

// IsFFmpegAvailable checks if the ffmpeg executable path was successfully found.
func IsFFmpegAvailable() bool {
	Initialize("", "")
	return ffmpegPath != ""
}

// GetFFmpegPath returns the determined path to the ffmpeg executable.
func GetFFmpegPath() string {
	Initialize("", "")
	return ffmpegPath
}

// IsFFprobeAvailable checks if the ffprobe executable path was successfully found.
func IsFFprobeAvailable() bool {
	Initialize("", "")
	return ffprobePath != ""
}

// GetFFprobePath returns the determined path to the ffprobe executable.
func GetFFprobePath() string {
	Initialize("", "")
	return ffprobePath
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Duration  string `json:"duration"` // Can be string, needs parsing
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

// VideoMetadata holds the technical metadata needed to pick a poster frame.
type VideoMetadata struct {
	DurationSec float64
	Width       int
	Height      int
}

// ProbeVideo executes ffprobe on a video file and returns its metadata.
func ProbeVideo(filePath string) (*VideoMetadata, error) {
	if !IsFFprobeAvailable() {
		return nil, fmt.Errorf("ffprobe is not available")
	}

	cmdArgs := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-i", filePath,
	}

	cmd := exec.Command(GetFFprobePath(), cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Log.Debugf("Starting ffprobe metadata extraction: %s %s", GetFFprobePath(), strings.Join(cmdArgs, " "))

	if err := cmd.Run(); err != nil {
		logging.Log.Errorf("ffprobe execution failed: %v\nffprobe output:\n%s", err, stderr.String())
		return nil, fmt.Errorf("ffprobe error: %s", stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		logging.Log.Errorf("Failed to parse ffprobe JSON output: %v\nOutput: %s", err, stdout.String())
		return nil, fmt.Errorf("failed to parse ffprobe JSON: %w", err)
	}

	meta := &VideoMetadata{}

	// Find the first video stream for dimensions and duration
	for _, stream := range output.Streams {
		if stream.CodecType == "video" {
			meta.Width = stream.Width
			meta.Height = stream.Height
			if d, err := parseDurationString(stream.Duration); err == nil {
				meta.DurationSec = d
			}
			break
		}
	}

	// If no stream duration was found, use the format duration (often more accurate)
	if meta.DurationSec == 0 {
		if d, err := parseDurationString(output.Format.Duration); err == nil {
			meta.DurationSec = d
		}
	}

	logging.Log.Debugf("ffprobe: Duration: %f, W: %d, H: %d", meta.DurationSec, meta.Width, meta.Height)
	return meta, nil
}

// Helper to parse duration strings (e.g., "180.500000") from ffprobe
func parseDurationString(d string) (float64, error) {
	if d == "" {
		return 0, fmt.Errorf("empty duration string")
	}
	f, err := strconv.ParseFloat(d, 64)
	if err != nil {
		logging.Log.Warnf("ffprobe: Could not parse duration string '%s': %v", d, err)
		return 0, err
	}
	return f, nil
}

// ExtractFrameJPEG grabs the frame at the given offset (seconds) as an
// in-memory JPEG.
func ExtractFrameJPEG(filePath string, offsetSec float64) ([]byte, error) {
	if !IsFFmpegAvailable() {
		return nil, fmt.Errorf("ffmpeg is not available")
	}

	cmdArgs := []string{
		"-y",
		"-ss", strconv.FormatFloat(offsetSec, 'f', 3, 64),
		"-i", filePath,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-", // Write to stdout
	}

	cmd := exec.Command(GetFFmpegPath(), cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logging.Log.Errorf("FFmpeg frame extraction failed: %v\nOutput: %s", err, stderr.String())
		return nil, fmt.Errorf("failed to extract poster frame: %s", stderr.String())
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame data")
	}
	return stdout.Bytes(), nil
}
