package account

import (
	"context"
	"errors"
	"fmt"
	"io"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
)

var ErrInvalidImage = httperr.NewBusiness(
	"invalid_image",
	"Image must be a JPEG, PNG or WebP file up to 5MB.",
)

// Ratings aggregates reviews per barber.
type Ratings interface {
	Summaries(ctx context.Context, barberIDs []uint) (map[uint]review.Summary, error)
}

type Barbers struct {
	users   domain.UserRepository
	ratings Ratings
	images  storage.ImageStore
}

func NewBarbers(users domain.UserRepository, ratings Ratings, images storage.ImageStore) *Barbers {
	return &Barbers{users: users, ratings: ratings, images: images}
}

// UploadImage converts the upload to a bounded webp and points the barber
// profile at it.
func (uc *Barbers) UploadImage(ctx context.Context, barberID uint, r io.Reader) (string, error) {
	if _, err := uc.users.GetBarberProfile(ctx, barberID); err != nil {
		return "", err
	}

	data, err := storage.ToWebP(r, storage.MaxImageSide)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		return "", ErrInvalidImage
	}
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", barberID, newToken())
	url, err := uc.images.Put(ctx, key, data, storage.WebPMime)
	if err != nil {
		return "", err
	}

	if err := uc.users.SetBarberImage(ctx, barberID, url); err != nil {
		return "", err
	}
	return url, nil
}

// ListPublic returns active barbers with their rating summary.
func (uc *Barbers) ListPublic(ctx context.Context) ([]domain.BarberView, error) {
	users, profiles, err := uc.users.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	sums, err := uc.ratings.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BarberView, 0, len(users))
	for _, u := range users {
		p := profiles[u.ID]
		s := sums[u.ID]
		out = append(out, domain.BarberView{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Bio:       p.Bio,
			ImageURL:  p.ImageURL,
			Rating:    s.Average,
			Reviews:   s.Count,
		})
	}
	return out, nil
}
