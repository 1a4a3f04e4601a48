package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/media"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
)

var (
	ErrProfileValidation = errors.New("profile validation failed")
	ErrAvatarTooLarge    = errors.New("avatar exceeds size limit")
	ErrAvatarInvalid     = errors.New("avatar is not a valid image")
)

// ProfileView is what GET /api/profiles/me/ returns: the profile merged with
// the account, the user's favorite attractions in full, and their bookings.
type ProfileView struct {
	Username  string              `json:"username"`
	Email     string              `json:"email"`
	IsStaff   bool                `json:"is_staff"`
	Avatar    *string             `json:"avatar,omitempty"`
	Bio       string              `json:"bio"`
	Country   string              `json:"country"`
	Favorites []domain.Attraction `json:"favorites"`
	Bookings  []domain.Booking    `json:"bookings"`
}

type ProfileUpdate struct {
	Bio     *string
	Country *string
	Avatar  *media.Upload
}

type ProfileService struct {
	profiles    ports.ProfileRepository
	favorites   ports.FavoriteRepository
	attractions ports.AttractionRepository
	bookings    ports.BookingRepository
	processor   media.Processor
	storage     ports.ObjectStorage

	avatarBucket string
	maxBytes     int64
	maxDimension int
}

func NewProfileService(
	profiles ports.ProfileRepository,
	favorites ports.FavoriteRepository,
	attractions ports.AttractionRepository,
	bookings ports.BookingRepository,
	processor media.Processor,
	storage ports.ObjectStorage,
	avatarBucket string,
	maxBytes int64,
	maxDimension int,
) *ProfileService {
	return &ProfileService{
		profiles:     profiles,
		favorites:    favorites,
		attractions:  attractions,
		bookings:     bookings,
		processor:    processor,
		storage:      storage,
		avatarBucket: avatarBucket,
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
	}
}

func (s *ProfileService) Me(ctx context.Context, user *domain.User) (*ProfileView, error) {
	profile, err := s.profiles.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	favoriteIDs, err := s.favorites.ListAttractionIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	favorites := []domain.Attraction{}
	if len(favoriteIDs) > 0 {
		favorites, err = s.attractions.ListByIDs(ctx, favoriteIDs)
		if err != nil {
			return nil, err
		}
	}

	bookings, err := s.bookings.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Username:  user.Username,
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		Avatar:    profile.AvatarURL,
		Bio:       profile.Bio,
		Country:   profile.Country,
		Favorites: favorites,
		Bookings:  bookings,
	}, nil
}

func (s *ProfileService) Update(ctx context.Context, user *domain.User, update ProfileUpdate) (*ProfileView, error) {
	profile, err := s.profiles.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if update.Bio != nil {
		profile.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.Country != nil {
		profile.Country = strings.TrimSpace(*update.Country)
	}
	if update.Avatar != nil {
		url, err := s.storeAvatar(ctx, user.ID, *update.Avatar)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = &url
	}

	if _, err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.Me(ctx, user)
}

func (s *ProfileService) storeAvatar(ctx context.Context, userID uuid.UUID, upload media.Upload) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: avatar uploads are disabled", ErrProfileValidation)
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", ErrAvatarTooLarge
	}

	result, err := s.processor.Process(ctx, upload, s.maxDimension)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAvatarInvalid, err)
	}

	ext := ".jpg"
	if result.ContentType == "image/png" {
		ext = ".png"
	}
	// Fresh key per upload so CDN and browser caches never serve a stale
	// avatar for the old URL.
	objectKey := path.Join("avatars", userID.String(), uuid.NewString()+ext)

	url, err := s.storage.Upload(ctx, s.avatarBucket, objectKey, result.ContentType,
		bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return url, nil
}
