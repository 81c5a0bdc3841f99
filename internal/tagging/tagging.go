// Package tagging reads embedded metadata from uploaded audio files.
package tagging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
)

// ReadTitle returns the embedded title of the audio stream r. The format is
// picked from the extension of name. Unsupported formats and untagged files
// yield an empty title.
func ReadTitle(name string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case constants.ExtMP3:
		return readMP3Title(r)
	case constants.ExtFLAC:
		return readFLACTitle(r)
	default:
		return "", nil
	}
}

func readMP3Title(r io.Reader) (string, error) {
	tag, err := id3v2.ParseReader(r, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
	if err != nil {
		return "", fmt.Errorf("failed to parse ID3 tag: %w", err)
	}
	defer tag.Close()

	return strings.TrimSpace(tag.Title()), nil
}

// readFLACTitle parses only the metadata blocks, never the audio frames.
func readFLACTitle(r io.Reader) (string, error) {
	f, err := flac.ParseMetadata(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse FLAC metadata: %w", err)
	}

	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return "", fmt.Errorf("failed to parse vorbis comment: %w", err)
		}
		values, err := cmt.Get(flacvorbis.FIELD_TITLE)
		if err != nil {
			return "", err
		}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				return v, nil
			}
		}
	}
	return "", nil
}
