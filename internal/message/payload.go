package message

// Sender identity and embed constants. The destination resolves
// attachment:// references against the uploaded file parts.
const (
	senderName      = "Kanboard"
	senderAvatarURL = "https://raw.githubusercontent.com/kanboard/kanboard/master/assets/img/favicon.png"

	embedType  = "rich"
	embedColor = 0xF9DF18

	avatarFieldName    = "file"
	avatarFilename     = "avatar.png"
	thumbnailFieldName = "file2"
	thumbnailFilename  = "thumbnail.png"

	avatarAttachmentRef    = "attachment://" + avatarFilename
	thumbnailAttachmentRef = "attachment://" + thumbnailFilename

	pngMIME = "image/png"
)

// Attachment is a named binary blob delivered alongside the message payload.
// Name is the multipart field name the destination uses to resolve
// attachment:// references.
type Attachment struct {
	Name     string
	Filename string
	MIME     string
	Data     []byte
}

// EmbedAuthor is the author block of a rich embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedThumbnail references an image shown beside the embed body.
type EmbedThumbnail struct {
	URL string `json:"url"`
}

// Embed is a structured rich-message block understood by the destination
// chat service.
type Embed struct {
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Timestamp   string          `json:"timestamp"`
	Color       int             `json:"color"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
	Author      *EmbedAuthor    `json:"author,omitempty"`
}

// Message is a fully rendered delivery payload: the outer webhook fields, a
// single-element embeds list, and any binary attachments.
type Message struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Embeds    []Embed `json:"embeds"`

	Attachments []Attachment `json:"-"`
}

// Actor is the authenticated user a dispatch is attributable to, when any.
// Avatar carries the actor's stored avatar bytes; empty means the avatar
// could not be read and the message goes out without one.
type Actor struct {
	Name   string
	Avatar []byte
}
