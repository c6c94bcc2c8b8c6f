package dto

import (
	"golang-ticker-relay/internal/entity"
)

// IngestMessageRequest is the inbound webhook payload for one chat message.
type IngestMessageRequest struct {
	MessageID   string              `json:"message_id"`
	Content     string              `json:"content"`
	AuthorID    string              `json:"author_id"`
	AuthorName  string              `json:"author_name"`
	ChannelID   string              `json:"channel_id"`
	ChannelName string              `json:"channel_name"`
	GuildID     string              `json:"guild_id"`
	GuildName   string              `json:"guild_name"`
	ImageURLs   []string            `json:"image_urls"`
	Attachments []AttachmentRequest `json:"attachments"`
	Embeds      []EmbedRequest      `json:"embeds"`
	Test        bool                `json:"test"`
}

// AttachmentRequest describes one attachment in the inbound payload.
type AttachmentRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// EmbedRequest describes one rich-content block in the inbound payload.
type EmbedRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	URL         string              `json:"url"`
	Footer      string              `json:"footer"`
	Timestamp   string              `json:"timestamp"`
	ImageURL    string              `json:"image_url"`
	Thumbnail   string              `json:"thumbnail"`
	Fields      []EmbedFieldRequest `json:"fields"`
}

// EmbedFieldRequest is one name/value field inside an embed.
type EmbedFieldRequest struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// ToEntity converts the request into the immutable message entity.
func (r *IngestMessageRequest) ToEntity() *entity.Message {
	msg := &entity.Message{
		MessageID:   r.MessageID,
		Content:     r.Content,
		AuthorID:    r.AuthorID,
		AuthorName:  r.AuthorName,
		ChannelID:   r.ChannelID,
		ChannelName: r.ChannelName,
		GuildID:     r.GuildID,
		GuildName:   r.GuildName,
		ImageURLs:   r.ImageURLs,
		Test:        r.Test,
	}
	for _, a := range r.Attachments {
		msg.Attachments = append(msg.Attachments, entity.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			URL:         a.URL,
			Width:       a.Width,
			Height:      a.Height,
		})
	}
	for _, e := range r.Embeds {
		embed := entity.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			Footer:      e.Footer,
			Timestamp:   e.Timestamp,
			ImageURL:    e.ImageURL,
			Thumbnail:   e.Thumbnail,
		}
		for _, f := range e.Fields {
			embed.Fields = append(embed.Fields, entity.MessageEmbedField{
				Name:   f.Name,
				Value:  f.Value,
				Inline: f.Inline,
			})
		}
		msg.Embeds = append(msg.Embeds, embed)
	}
	return msg
}

// IngestMessageResponse acknowledges an accepted message.
type IngestMessageResponse struct {
	Status         string   `json:"status"`
	MatchedRules   []string `json:"matched_rules"`
	Tickers        []string `json:"tickers"`
	TasksScheduled int      `json:"tasks_scheduled"`
}
