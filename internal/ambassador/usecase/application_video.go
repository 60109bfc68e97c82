package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/storage"
)

const defaultMaxVideoBytes int64 = 100 << 20

//nolint:gochecknoglobals // global for fast reuse
var videoContentTypeExt = map[string]string{
	"video/mp4":       ".mp4",
	"video/mpeg":      ".mpeg",
	"video/quicktime": ".mov",
	"video/x-msvideo": ".avi",
	"video/x-ms-wmv":  ".wmv",
	"video/webm":      ".webm",
}

type UploadVideoInput struct {
	ApplicationID int64
	File          io.Reader
	Filename      string
	ContentType   string
}

// UploadVideo stores the introduction video and marks the video step done.
// A previously uploaded video is removed once the new one is recorded.
func (s *Usecase) UploadVideo(ctx context.Context, in UploadVideoInput) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "UploadVideo")
	defer span.End()

	if in.File == nil {
		return nil, goerror.NewInvalidFormat("No video file uploaded")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := videoContentTypeExt[contentType]
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "video", "Only video files are allowed")
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if app.Status != entity.ApplicationStatusDraft {
		return nil, errAlreadySubmitted
	}

	tmp, size, err := s.spoolVideo(in.File)
	if tmp != nil {
		defer func() {
			_ = tmp.Close()
			if rErr := os.Remove(tmp.Name()); rErr != nil {
				slog.WarnContext(ctx, "failed to remove spooled video", "path", tmp.Name(), "error", rErr)
			}
		}()
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("videos/%d/%s%s", app.ID, s.uuid.Generate(), ext)
	filename := filepath.Base(strings.TrimSpace(in.Filename))

	if _, err := s.storage.PutObject(ctx, key, tmp, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"application_id": strconv.FormatInt(app.ID, 10),
			"filename":       filename,
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload application video", "application_id", app.ID, "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to upload video")
	}

	updated, err := s.repoDB.UpdateApplicationVideo(ctx, app.ID, entity.VideoUpload{
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
	})
	if err != nil {
		s.deleteVideo(ctx, app.ID, key)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, errAlreadySubmitted
		}
		slog.ErrorContext(ctx, "failed to repo update application video", "application_id", app.ID, "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to upload video")
	}

	if app.VideoKey != "" && app.VideoKey != key {
		s.deleteVideo(ctx, app.ID, app.VideoKey)
	}

	slog.InfoContext(ctx, "application video uploaded", "application_id", app.ID, "size", size)

	return updated, nil
}

// spoolVideo copies the upload to a temporary file so its size is known
// before it reaches object storage.
func (s *Usecase) spoolVideo(r io.Reader) (*os.File, int64, error) {
	limit := s.cfg.GetInt64("storage.max_video_bytes")
	if limit <= 0 {
		limit = defaultMaxVideoBytes
	}

	tmp, err := os.CreateTemp("", "ambassador-video-*")
	if err != nil {
		return nil, 0, goerror.NewServerMsg(err, "Failed to upload video")
	}

	n, err := io.Copy(tmp, io.LimitReader(r, limit+1))
	if err != nil {
		return tmp, 0, goerror.NewInvalidFormat("Failed to read uploaded video")
	}
	if n == 0 {
		return tmp, 0, goerror.NewInvalidFormat("No video file uploaded")
	}
	if n > limit {
		return tmp, 0, goerror.NewInvalidInput(nil, "video", fmt.Sprintf("Video must not exceed %d MB", limit>>20))
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return tmp, 0, goerror.NewServerMsg(err, "Failed to upload video")
	}

	return tmp, n, nil
}

func (s *Usecase) deleteVideo(ctx context.Context, applicationID int64, key string) {
	if err := s.storage.DeleteObject(context.WithoutCancel(ctx), key); err != nil {
		slog.WarnContext(ctx, "failed to delete application video", "application_id", applicationID, "key", key, "error", err)
	}
}

type StreamVideoInput struct {
	ApplicationID int64 `validate:"required,gt=0"`
	Range         string
}

// StreamVideoOutput is an open video stream. Range is nil for a full read.
// The caller must close Body.
type StreamVideoOutput struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	TotalSize   int64
	Range       *storage.ByteRange
}

var errVideoNotFound = goerror.NewBusiness("Video not found", goerror.CodeNotFound)

// StreamVideo opens the application video, honouring a single HTTP byte
// range. An unsatisfiable range falls back to the whole object.
func (s *Usecase) StreamVideo(ctx context.Context, in StreamVideoInput) (*StreamVideoOutput, error) {
	ctx, span := s.startSpan(ctx, "StreamVideo")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if !app.VideoUploaded || app.VideoKey == "" {
		return nil, errVideoNotFound
	}

	info, err := s.storage.StatObject(ctx, app.VideoKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		slog.WarnContext(ctx, "application video missing in storage", "application_id", app.ID, "key", app.VideoKey)
		return nil, errVideoNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to stat application video", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	rng, err := storage.ParseRange(in.Range, info.Size)
	if err != nil {
		slog.DebugContext(ctx, "ignoring unsatisfiable range", "range", in.Range, "size", info.Size)
		rng = nil
	}

	body, obj, err := s.storage.GetObject(ctx, app.VideoKey, rng)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, errVideoNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to open application video", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = app.VideoContentType
	}

	size := info.Size
	if rng != nil {
		size = rng.Length()
	}

	return &StreamVideoOutput{
		Body:        body,
		ContentType: contentType,
		Size:        size,
		TotalSize:   info.Size,
		Range:       rng,
	}, nil
}
