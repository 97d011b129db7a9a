package thumbnail

// maxImageSize bounds a downloaded thumbnail
const maxImageSize = 20 << 20

// sniffLength is how many bytes content sniffing needs
const sniffLength = 262

// preferredExtensions wins when a content type maps to several extensions
var preferredExtensions = []string{".jpg", ".png", ".webp", ".gif", ".mp4"}

const (
	LogMsgNoImageURL       = "Post has no image URL"
	LogMsgDownloadFailed   = "Could not download remote thumbnail"
	LogMsgUnexpectedStatus = "Remote thumbnail returned unexpected status"
	LogMsgImageTooLarge    = "Remote thumbnail exceeds size limit"
	LogMsgUnknownExtension = "Could not determine thumbnail file type"
	LogMsgStoreFailed      = "Could not store thumbnail"
	LogMsgLookupFailed     = "Could not look up existing thumbnail"
	LogMsgThumbnailStored  = "Stored thumbnail"
)

const (
	ErrMsgCreateDir   = "failed to create thumbnail directory"
	ErrMsgWriteFile   = "failed to write thumbnail"
	ErrMsgListObjects = "failed to list thumbnail objects"
	ErrMsgPutObject   = "failed to upload thumbnail"
	ErrMsgLoadAWS     = "failed to load object storage config"
)
