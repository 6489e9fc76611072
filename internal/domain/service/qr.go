package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
	qr "github.com/clubmsg/backend/pkg/qrcode"
)

// qrClubStorage is the slice of ClubStorage the QR service needs.
type qrClubStorage interface {
	Get(ctx context.Context, id string) (*entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
}

// QrService renders invite QR codes for clubs. The PNG is generated
// once and cached on the club row until the invite is revoked.
type QrService struct {
	clubs      qrClubStorage
	qrCFG      qr.Config
	inviteBase string
}

func NewQrService(clubs qrClubStorage, qrCFG qr.Config, inviteBase string) *QrService {
	return &QrService{
		clubs:      clubs,
		qrCFG:      qrCFG,
		inviteBase: inviteBase,
	}
}

// GetClubInviteQR returns the invite QR for a club, minting the invite
// code and rendering the PNG on first use. Owner only.
func (s *QrService) GetClubInviteQR(ctx context.Context, requesterID, clubID string) ([]byte, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.OwnerID != requesterID {
		return nil, errorz.ErrForbidden
	}
	if len(club.InviteQR) > 0 {
		return club.InviteQR, nil
	}

	codeID := uuid.New().String()
	cfg := s.qrCFG
	cfg.Content = fmt.Sprintf("%s/invite/%s", s.inviteBase, codeID)
	data, err := cfg.Generate()
	if err != nil {
		return nil, err
	}

	club.InviteCodeID = codeID
	club.InviteQR = data
	if _, err := s.clubs.Update(ctx, club); err != nil {
		return nil, err
	}
	return data, nil
}

// RevokeClubInviteQR drops the cached invite, so the next request
// mints a fresh code. Owner only.
func (s *QrService) RevokeClubInviteQR(ctx context.Context, requesterID, clubID string) error {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if club.OwnerID != requesterID {
		return errorz.ErrForbidden
	}
	if club.InviteCodeID == "" && len(club.InviteQR) == 0 {
		return nil
	}
	club.InviteCodeID = ""
	club.InviteQR = nil
	_, err = s.clubs.Update(ctx, club)
	return err
}
