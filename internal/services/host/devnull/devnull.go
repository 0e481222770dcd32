// Package devnull implements the host ports against nothing at all.
// The binaries run on it until a real platform adapter is wired; every call
// succeeds, logs at debug, and returns generated handles.
package devnull

import (
	"context"

	"github.com/google/uuid"

	"inkarena/internal/platform/logger"
	"inkarena/internal/services/host/domain"
)

// Ports returns a full host port set backed by devnull
func Ports() domain.Ports {
	h := handle{log: *logger.Named("host.devnull")}
	return domain.Ports{
		Comments: h,
		Posts:    h,
		Media:    h,
		Flair:    h,
		Realtime: h,
		Identity: h,
	}
}

type handle struct{ log logger.Logger }

func (h handle) Submit(_ context.Context, postID, text string) (domain.Comment, error) {
	id := "c_" + uuid.NewString()
	h.log.Debug().Str("post_id", postID).Str("comment_id", id).Msg("comment submitted")
	return domain.Comment{ID: id, PostID: postID, Text: text}, nil
}

func (h handle) Edit(_ context.Context, commentID, _ string) error {
	h.log.Debug().Str("comment_id", commentID).Msg("comment edited")
	return nil
}

func (h handle) Distinguish(_ context.Context, commentID string, sticky bool) error {
	h.log.Debug().Str("comment_id", commentID).Bool("sticky", sticky).Msg("comment distinguished")
	return nil
}

func (h handle) Delete(_ context.Context, commentID string) error {
	h.log.Debug().Str("comment_id", commentID).Msg("comment deleted")
	return nil
}

func (h handle) Create(_ context.Context, community, title string, data map[string]string) (domain.Post, error) {
	id := "p_" + uuid.NewString()
	h.log.Debug().Str("community", community).Str("post_id", id).Str("title", title).Msg("post created")
	return domain.Post{ID: id, Community: community, Title: title, Data: data}, nil
}

func (h handle) ByID(_ context.Context, postID string) (domain.Post, error) {
	return domain.Post{ID: postID}, nil
}

func (h handle) SetData(_ context.Context, postID string, _ map[string]string) error {
	h.log.Debug().Str("post_id", postID).Msg("post data set")
	return nil
}

func (h handle) Upload(_ context.Context, url, kind string) (domain.Upload, error) {
	id := "m_" + uuid.NewString()
	h.log.Debug().Str("url", url).Str("kind", kind).Str("media_id", id).Msg("media uploaded")
	return domain.Upload{MediaID: id, MediaURL: url}, nil
}

func (h handle) Set(_ context.Context, community, userID, text string) error {
	h.log.Debug().Str("community", community).Str("user_id", userID).Str("flair", text).Msg("flair set")
	return nil
}

func (h handle) Send(_ context.Context, channel string, _ map[string]any) error {
	h.log.Debug().Str("channel", channel).Msg("realtime send")
	return nil
}

func (h handle) UserByID(_ context.Context, userID string) (domain.User, error) {
	return domain.User{ID: userID, Username: "user-" + userID}, nil
}

func (h handle) UserByUsername(_ context.Context, username string) (domain.User, error) {
	return domain.User{ID: "t2_" + username, Username: username}, nil
}

func (h handle) Moderators(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}
