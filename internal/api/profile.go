package api

import (
	"context"
	"io"
	"net/http"

	"notesflow-cli/internal/model"
)

type ProfileClient struct {
	c *Client
}

// ProfileUpdate replaces the profile wholesale, matching the form-submission
// semantics of the profile editor.
type ProfileUpdate struct {
	AvatarURL     *string `json:"avatar_url,omitempty"`
	CoverPhotoURL *string `json:"cover_photo_url,omitempty"`
	DisplayName   *string `json:"display_name,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	LinkedinURL   *string `json:"linkedin_url,omitempty"`
	GithubURL     *string `json:"github_url,omitempty"`
	TwitterURL    *string `json:"twitter_url,omitempty"`
	WebsiteURL    *string `json:"website_url,omitempty"`
}

func (p *ProfileClient) Get(ctx context.Context) (*model.UserProfile, error) {
	var prof model.UserProfile
	if _, err := p.c.do(ctx, http.MethodGet, "/profile", nil, nil, &prof); err != nil {
		return nil, err
	}
	return &prof, nil
}

func (p *ProfileClient) Update(ctx context.Context, upd ProfileUpdate) (*model.UserProfile, error) {
	if upd.Bio != nil {
		if err := model.ValidateBio(*upd.Bio); err != nil {
			return nil, err
		}
	}
	var prof model.UserProfile
	if _, err := p.c.do(ctx, http.MethodPut, "/profile", nil, upd, &prof); err != nil {
		return nil, err
	}
	return &prof, nil
}

// Upload is the response payload for avatar/cover uploads.
type Upload struct {
	URL string `json:"url"`
}

func (p *ProfileClient) UploadAvatar(ctx context.Context, filename string, file io.Reader) (*Upload, error) {
	var up Upload
	if _, err := p.c.upload(ctx, "/profile/upload-avatar", filename, file, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

func (p *ProfileClient) UploadCover(ctx context.Context, filename string, file io.Reader) (*Upload, error) {
	var up Upload
	if _, err := p.c.upload(ctx, "/profile/upload-cover", filename, file, &up); err != nil {
		return nil, err
	}
	return &up, nil
}
