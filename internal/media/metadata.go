package media

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
)

// TokenSource returns the current token record
type TokenSource interface {
	Token(ctx context.Context) (domain.TokenRecord, bool, error)
}

// PostLookup resolves a post, from cache when possible
type PostLookup interface {
	GetPost(ctx context.Context, token, id string) (*domain.Post, bool)
}

// ThumbnailSource stores a local copy of a post's image
type ThumbnailSource interface {
	LocalURI(ctx context.Context, post domain.Post) (string, bool)
}

// Resolver answers the named metadata attributes of a post
type Resolver struct {
	tokens TokenSource
	posts  PostLookup
	thumbs ThumbnailSource
}

// NewResolver creates a metadata resolver. thumbs may be nil, in which case
// thumbnail_uri is never resolved.
func NewResolver(tokens TokenSource, posts PostLookup, thumbs ThumbnailSource) *Resolver {
	return &Resolver{tokens: tokens, posts: posts, thumbs: thumbs}
}

// Lookup resolves the post with the current token.
// It returns domain.ErrNoToken when no account is linked and domain.ErrPostNotFound
// when the post cannot be fetched.
func (r *Resolver) Lookup(ctx context.Context, id string) (*domain.Post, error) {
	tok, ok, err := r.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoToken
	}

	post, ok := r.posts.GetPost(ctx, tok.Token, id)
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgMetadataLookup, "post_id", id)
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// Metadata returns a single attribute of the post with the given id
func (r *Resolver) Metadata(ctx context.Context, id, attribute string) (string, bool) {
	post, err := r.Lookup(ctx, id)
	if err != nil {
		return "", false
	}
	return r.Attribute(ctx, *post, attribute)
}

// All returns every attribute that resolves to a value
func (r *Resolver) All(ctx context.Context, post domain.Post) map[string]string {
	out := make(map[string]string, len(domain.MetadataAttributes))
	for _, attr := range domain.MetadataAttributes {
		if v, ok := r.Attribute(ctx, post, attr); ok {
			out[attr] = v
		}
	}
	return out
}

// Attribute maps one named attribute onto the post's fields
func (r *Resolver) Attribute(ctx context.Context, post domain.Post, attribute string) (string, bool) {
	switch attribute {
	case domain.AttrCaption:
		return post.Caption, post.Caption != ""
	case domain.AttrID:
		return post.ID, post.ID != ""
	case domain.AttrPermalink:
		return post.Permalink, post.Permalink != ""
	case domain.AttrUsername:
		return post.Username, post.Username != ""
	case domain.AttrTimestamp:
		t, err := post.PublishedAt()
		if err != nil {
			return "", false
		}
		return t.UTC().Format(domain.MetadataTimestampLayout), true
	case domain.AttrThumbnailURI:
		if r.thumbs == nil {
			return "", false
		}
		return r.thumbs.LocalURI(ctx, post)
	case domain.AttrDefaultName:
		if strings.TrimSpace(post.Caption) == "" {
			return post.ID, post.ID != ""
		}
		return Summarize(post.Caption, DefaultNameLength), true
	default:
		return "", false
	}
}

// Summarize shortens text to at most size runes. Longer text is cut at the last
// word boundary inside the limit, or hard cut when there is none.
func Summarize(text string, size int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= size {
		return text
	}

	runes := []rune(text)[:size]
	// Keep a word that ends exactly at the limit
	if unicode.IsSpace([]rune(text)[size]) {
		return strings.TrimRightFunc(string(runes), unicode.IsSpace)
	}

	cut := strings.LastIndexFunc(string(runes), unicode.IsSpace)
	if cut <= 0 {
		return string(runes)
	}
	return strings.TrimRightFunc(string(runes)[:cut], unicode.IsSpace)
}
