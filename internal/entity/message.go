package entity

import "fmt"

// Message is one inbound chat message. It is immutable once bound from the
// ingestion payload.
type Message struct {
	MessageID   string         `json:"message_id"`
	Content     string         `json:"content"`
	AuthorID    string         `json:"author_id"`
	AuthorName  string         `json:"author_name"`
	ChannelID   string         `json:"channel_id"`
	ChannelName string         `json:"channel_name"`
	GuildID     string         `json:"guild_id"`
	GuildName   string         `json:"guild_name"`
	ImageURLs   []string       `json:"image_urls,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
	Embeds      []MessageEmbed `json:"embeds,omitempty"`
	Test        bool           `json:"test"`
}

// Attachment describes a file attached to a message.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// MessageEmbed is a rich-content block carried by a message.
type MessageEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Footer      string              `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	ImageURL    string              `json:"image_url,omitempty"`
	Thumbnail   string              `json:"thumbnail,omitempty"`
	Fields      []MessageEmbedField `json:"fields,omitempty"`
}

// MessageEmbedField is a single name/value field inside an embed.
type MessageEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// PrimaryImageURL returns the first image associated with the message:
// explicit image URLs first, then image attachments, then embed images.
func (m *Message) PrimaryImageURL() string {
	if len(m.ImageURLs) > 0 {
		return m.ImageURLs[0]
	}
	for _, a := range m.Attachments {
		if a.URL != "" {
			return a.URL
		}
	}
	for _, e := range m.Embeds {
		if e.ImageURL != "" {
			return e.ImageURL
		}
	}
	return ""
}

// SourceLink returns a clickable link back to the original message, or an
// empty string when the ids needed to build one are missing.
func (m *Message) SourceLink() string {
	if m.GuildID == "" || m.ChannelID == "" || m.MessageID == "" {
		return ""
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", m.GuildID, m.ChannelID, m.MessageID)
}
