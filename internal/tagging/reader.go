package tagging

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	dhowden "github.com/dhowden/tag"
	flacpicture "github.com/go-flac/flacpicture"
	flacvorbis "github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"

	"github.com/dmfalke/tunecast/internal/domain"
)

// FileMetadata is everything extracted from one audio file: the raw tag
// record, the stream properties and any embedded cover art.
type FileMetadata struct {
	Tags       Tags
	Properties domain.AudioProperties
	Cover      []byte
	CoverMIME  string
}

// ReadFile extracts metadata from an audio file, choosing the reader by
// extension: bogem/id3v2 for MP3, go-flac for FLAC, dhowden/tag for
// everything else. Missing tag fields stay zero-valued; only an unreadable
// file is an error.
func ReadFile(path string) (FileMetadata, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return readMP3(path)
	case ".flac":
		return readFLAC(path)
	default:
		return readGeneric(path)
	}
}

func readMP3(path string) (FileMetadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return FileMetadata{}, fmt.Errorf("failed to open mp3 tags: %w", err)
	}
	defer tag.Close()

	meta := FileMetadata{
		Tags: Tags{
			Title:       tag.Title(),
			Artist:      tag.Artist(),
			Album:       tag.Album(),
			Genre:       tag.Genre(),
			AlbumArtist: tag.GetTextFrame(tag.CommonID("Band/Orchestra/Accompaniment")).Text,
			Year:        parseInt(tag.Year()),
			Track:       parseTrackNumber(tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text),
		},
	}

	for _, frame := range tag.GetFrames(tag.CommonID("Attached picture")) {
		if picture, ok := frame.(id3v2.PictureFrame); ok {
			meta.Cover = picture.Picture
			meta.CoverMIME = picture.MimeType
			break
		}
	}

	return meta, nil
}

func readFLAC(path string) (FileMetadata, error) {
	file, err := goflac.ParseFile(path)
	if err != nil {
		return FileMetadata{}, fmt.Errorf("failed to parse flac: %w", err)
	}

	var meta FileMetadata

	for _, block := range file.Meta {
		switch block.Type {
		case goflac.VorbisComment:
			comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				continue
			}
			meta.Tags = tagsFromVorbis(comment)
		case goflac.Picture:
			if cover, mime, ok := pictureFromBlock(block); ok {
				meta.Cover = cover
				meta.CoverMIME = mime
			}
		}
	}

	if info, err := file.GetStreamInfo(); err == nil && info.SampleRate > 0 {
		meta.Properties = domain.AudioProperties{
			SampleRate: info.SampleRate,
			BitDepth:   info.BitDepth,
			Channels:   info.ChannelCount,
			Duration:   time.Duration(info.SampleCount) * time.Second / time.Duration(info.SampleRate),
		}
		if stat, err := os.Stat(path); err == nil && meta.Properties.Duration > 0 {
			seconds := meta.Properties.Duration.Seconds()
			meta.Properties.Bitrate = int(float64(stat.Size()) * 8 / seconds / 1000)
		}
	}

	return meta, nil
}

func tagsFromVorbis(comment *flacvorbis.MetaDataBlockVorbisComment) Tags {
	first := func(field string) string {
		values, err := comment.Get(field)
		if err != nil || len(values) == 0 {
			return ""
		}
		return values[0]
	}

	return Tags{
		Title:       first(flacvorbis.FIELD_TITLE),
		Artist:      first(flacvorbis.FIELD_ARTIST),
		Album:       first(flacvorbis.FIELD_ALBUM),
		Genre:       first(flacvorbis.FIELD_GENRE),
		AlbumArtist: first("ALBUMARTIST"),
		Year:        parseInt(first(flacvorbis.FIELD_DATE)),
		Track:       parseTrackNumber(first(flacvorbis.FIELD_TRACKNUMBER)),
	}
}

func readGeneric(path string) (FileMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileMetadata{}, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	m, err := dhowden.ReadFrom(file)
	if err != nil {
		return FileMetadata{}, fmt.Errorf("failed to read tags: %w", err)
	}

	track, _ := m.Track()
	meta := FileMetadata{
		Tags: Tags{
			Title:       m.Title(),
			Artist:      m.Artist(),
			Album:       m.Album(),
			Genre:       m.Genre(),
			AlbumArtist: m.AlbumArtist(),
			Year:        m.Year(),
			Track:       track,
		},
	}

	if picture := m.Picture(); picture != nil {
		meta.Cover = picture.Data
		meta.CoverMIME = picture.MIMEType
	}

	return meta, nil
}

func pictureFromBlock(block *goflac.MetaDataBlock) ([]byte, string, bool) {
	picture, err := flacpicture.ParseFromMetaDataBlock(*block)
	if err != nil {
		return nil, "", false
	}
	return picture.ImageData, picture.MIME, true
}

// parseTrackNumber handles both "3" and "3/12" forms.
func parseTrackNumber(value string) int {
	number, _, _ := strings.Cut(value, "/")
	return parseInt(number)
}

// parseInt handles both "2001" and "2001-05-15" forms; the date variant is
// common in vorbis DATE fields.
func parseInt(value string) int {
	value = strings.TrimSpace(value)
	if len(value) > 4 {
		value = value[:4]
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
