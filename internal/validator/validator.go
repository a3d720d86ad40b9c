package validator

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/IJTechs/namedu-backend/internal/domain"
)

var errInvalidRole = errors.New("invalid_role")

// Validator provides validation methods for domain entities.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNews validates a News entity before it is stored.
func (v *Validator) ValidateNews(n *domain.News) error {
	if err := validation.ValidateStruct(n,
		validation.Field(&n.Title,
			validation.Required.Error("title_required"),
			validation.Length(5, 300).Error("title_length"),
		),
		validation.Field(&n.Body,
			validation.Required.Error("body_required"),
			validation.Length(5, 0).Error("body_too_short"),
		),
		validation.Field(&n.AuthorID,
			validation.Required.Error("author_id_required"),
			is.UUID.Error("invalid_author_id"),
		),
		validation.Field(&n.ReadTime,
			validation.Min(0).Error("read_time_negative"),
		),
	); err != nil {
		return err
	}

	return validateImageURLs(n.Images)
}

// ValidateNewsUpdate validates an edit. Nil fields mean "keep" and are not
// checked.
func (v *Validator) ValidateNewsUpdate(upd *domain.NewsUpdate) error {
	if upd.Title != nil {
		if err := validation.Validate(*upd.Title,
			validation.Required.Error("title_required"),
			validation.Length(5, 300).Error("title_length"),
		); err != nil {
			return validation.Errors{"title": err}
		}
	}
	if upd.Body != nil {
		if err := validation.Validate(*upd.Body,
			validation.Required.Error("body_required"),
			validation.Length(5, 0).Error("body_too_short"),
		); err != nil {
			return validation.Errors{"body": err}
		}
	}
	return validateImageURLs(upd.Images)
}

// ValidateAdmin validates a new admin account and its plaintext password
// before hashing.
func (v *Validator) ValidateAdmin(a *domain.Admin, password string) error {
	if err := validation.ValidateStruct(a,
		validation.Field(&a.FullName,
			validation.Required.Error("full_name_required"),
			validation.Length(3, 120).Error("full_name_length"),
		),
		validation.Field(&a.Username,
			validation.Required.Error("username_required"),
			validation.Length(3, 64).Error("username_length"),
		),
		validation.Field(&a.Role,
			validation.By(func(value interface{}) error {
				role, _ := value.(string)
				if role != "" && !domain.IsValidRole(role) {
					return errInvalidRole
				}
				return nil
			}),
		),
	); err != nil {
		return err
	}

	if err := validation.Validate(password,
		validation.Required.Error("password_required"),
		validation.Length(8, 128).Error("password_length"),
	); err != nil {
		return validation.Errors{"password": err}
	}
	return nil
}

// ValidateChannelBinding validates a channel binding.
func (v *Validator) ValidateChannelBinding(b *domain.ChannelBinding) error {
	return validation.ValidateStruct(b,
		validation.Field(&b.BotToken,
			validation.Required.Error("bot_token_required"),
		),
		validation.Field(&b.ChannelID,
			validation.Required.Error("channel_id_required"),
		),
		validation.Field(&b.AdminChatID,
			validation.Required.Error("admin_chat_id_required"),
		),
		validation.Field(&b.AdminID,
			validation.Required.Error("admin_id_required"),
			is.UUID.Error("invalid_admin_id"),
		),
	)
}

func validateImageURLs(images []string) error {
	for _, img := range images {
		if err := validation.Validate(img, is.URL.Error("invalid_image_url")); err != nil {
			return validation.Errors{"images": err}
		}
	}
	return nil
}
