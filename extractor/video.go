package extractor

import (
	"context"
	"strings"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/omar99elnemr/summarizeit/models"
	"github.com/omar99elnemr/summarizeit/validation"
	pkgerrors "github.com/pkg/errors"
)

// captionSource resolves a video ID into its title and caption transcript.
type captionSource interface {
	Fetch(ctx context.Context, videoID, lang string) (title, transcript string, err error)
}

func (s *service) extractVideo(ctx context.Context, rawURL string) (*models.Document, error) {
	const op = "ExtractorService.extractVideo"

	videoID, err := validation.VideoID(rawURL)
	if err != nil {
		return nil, err
	}

	title, transcript, err := s.captions.Fetch(ctx, videoID, s.config.CaptionLanguage)
	if err != nil {
		return nil, err
	}

	transcript = normalizeText(transcript, s.config.MaxContentChars)
	if transcript == "" {
		return nil, errors.NoCaptions(op, nil, "Video captions are empty")
	}

	return &models.Document{
		SourceURL: rawURL,
		Kind:      models.KindVideo,
		Title:     title,
		Text:      transcript,
	}, nil
}

// youtubeCaptions fetches caption tracks through the YouTube player API.
type youtubeCaptions struct {
	client youtube.Client
}

func newYouTubeCaptions() *youtubeCaptions {
	return &youtubeCaptions{}
}

func (y *youtubeCaptions) Fetch(ctx context.Context, videoID, lang string) (string, string, error) {
	const op = "youtubeCaptions.Fetch"

	video, err := y.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", "", errors.FetchFailed(op, pkgerrors.Wrap(err, "get video"), "Failed to fetch video metadata")
	}

	if len(video.CaptionTracks) == 0 {
		return "", "", errors.NoCaptions(op, nil, "No captions are available for this video")
	}

	transcript, err := y.client.GetTranscriptCtx(ctx, video, pickCaptionLanguage(video.CaptionTracks, lang))
	if err != nil {
		return "", "", errors.NoCaptions(op, err, "No captions are available for this video")
	}

	var builder strings.Builder
	for _, segment := range transcript {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(text)
	}

	return video.Title, builder.String(), nil
}

// pickCaptionLanguage prefers a manual track in the requested language,
// then an auto-generated one, then whatever the video offers.
func pickCaptionLanguage(tracks []youtube.CaptionTrack, lang string) string {
	var fallback string
	for _, track := range tracks {
		code := strings.ToLower(track.LanguageCode)
		if code == "" {
			continue
		}
		if fallback == "" {
			fallback = track.LanguageCode
		}
		if code == strings.ToLower(lang) || strings.HasPrefix(code, strings.ToLower(lang)+"-") {
			if track.Kind != "asr" {
				return track.LanguageCode
			}
			fallback = track.LanguageCode
		}
	}
	return fallback
}
