package constants

import "os"

func GetSongsDir() string {
	path := os.Getenv("LEADSHEET_SONGS_DIR")
	if path != "" {
		return path
	}
	return "./songs"
}

func GetOutputDir() string {
	path := os.Getenv("LEADSHEET_OUTPUT_DIR")
	if path != "" {
		return path
	}
	return "./output"
}

func GetS3Bucket() string {
	bucket := os.Getenv("LEADSHEET_S3_BUCKET")
	if bucket != "" {
		return bucket
	}

	panic("LEADSHEET_S3_BUCKET environment variable is not set!")
}

func GetS3Region() string {
	region := os.Getenv("LEADSHEET_S3_REGION")
	if region != "" {
		return region
	}
	return "us-east-1"
}

const DefaultAddr = ":8080"

// Subdirectories of the output dir, one per artifact kind.
const (
	HTMLSubdir = "html"
	PDFSubdir  = "pdf"
	MIDISubdir = "midi"
)

const IndexJSONFile = "index.json"

const DefaultTempoBPM = 120
