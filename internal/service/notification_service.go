package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/infra"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Pusher sends one push notification to one device token.
type Pusher interface {
	Push(ctx context.Context, msg infra.PushMessage) error
}

type NotificationService interface {
	Register(ctx context.Context, actor *authz.Identity, req dto.RegisterTokenRequest) (dto.NotificationTokenResponse, error)
	ListMine(ctx context.Context, actor *authz.Identity, activeOnly bool) (dto.NotificationTokenList, error)
	Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateTokenRequest) (dto.NotificationTokenResponse, error)
	Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error
	SendTest(ctx context.Context, actor *authz.Identity) (dto.SendResponse, error)
	SendToUser(ctx context.Context, actor *authz.Identity, userID uuid.UUID, req dto.SendNotificationRequest) (dto.SendResponse, error)
}

type notificationService struct {
	tx        repository.TxManager
	tokens    repository.NotificationTokenRepository
	employees repository.EmployeeRepository
	pusher    Pusher
}

func NewNotificationService(
	tx repository.TxManager,
	tokens repository.NotificationTokenRepository,
	employees repository.EmployeeRepository,
	pusher Pusher,
) NotificationService {
	return &notificationService{tx: tx, tokens: tokens, employees: employees, pusher: pusher}
}

// Register binds a device token to the caller. A token already held by
// another employee is deactivated there and re-created for the caller.
func (s *notificationService) Register(ctx context.Context, actor *authz.Identity, req dto.RegisterTokenRequest) (dto.NotificationTokenResponse, error) {
	var out *model.NotificationToken
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.tokens.FindActiveByToken(txCtx, req.Token)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if current != nil {
			if current.UserID == actor.ID {
				current.DeviceName = req.DeviceName
				out = current
				return s.tokens.Update(txCtx, current)
			}
			if err := s.tokens.Deactivate(txCtx, current.ID); err != nil {
				return err
			}
		}

		// reactivate a row the caller registered before
		mine, err := s.tokens.ListByUser(txCtx, actor.ID, false)
		if err != nil {
			return err
		}
		for i := range mine {
			if mine[i].Token == req.Token {
				mine[i].Active = true
				mine[i].DeviceName = req.DeviceName
				out = &mine[i]
				return s.tokens.Update(txCtx, out)
			}
		}

		out = &model.NotificationToken{
			Token:      req.Token,
			DeviceName: req.DeviceName,
			Active:     true,
			UserID:     actor.ID,
		}
		return s.tokens.Create(txCtx, out)
	})
	if err != nil {
		return dto.NotificationTokenResponse{}, conflictOnDuplicate(err, "Token is already registered")
	}
	return mapToken(*out), nil
}

func (s *notificationService) ListMine(ctx context.Context, actor *authz.Identity, activeOnly bool) (dto.NotificationTokenList, error) {
	list, err := s.tokens.ListByUser(ctx, actor.ID, activeOnly)
	if err != nil {
		return dto.NotificationTokenList{}, err
	}
	data := mapList(list, mapToken)
	return dto.NotificationTokenList{Data: data, Count: len(data)}, nil
}

func (s *notificationService) owned(ctx context.Context, actor *authz.Identity, id uuid.UUID) (*model.NotificationToken, error) {
	t, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Token not found")
	}
	if t.UserID != actor.ID {
		return nil, apierror.E(apierror.KindInsufficientPrivilege, "Not enough permissions")
	}
	return t, nil
}

func (s *notificationService) Update(ctx context.Context, actor *authz.Identity, id uuid.UUID, req dto.UpdateTokenRequest) (dto.NotificationTokenResponse, error) {
	t, err := s.owned(ctx, actor, id)
	if err != nil {
		return dto.NotificationTokenResponse{}, err
	}
	if req.DeviceName != nil {
		t.DeviceName = *req.DeviceName
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := s.tokens.Update(ctx, t); err != nil {
		return dto.NotificationTokenResponse{}, conflictOnDuplicate(err, "Token is active for another device")
	}
	return mapToken(*t), nil
}

func (s *notificationService) Delete(ctx context.Context, actor *authz.Identity, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.tokens.Delete(ctx, id)
}

func (s *notificationService) SendTest(ctx context.Context, actor *authz.Identity) (dto.SendResponse, error) {
	return s.fanOut(ctx, actor.ID, infra.PushMessage{
		Title: "Notificación de prueba",
		Body:  fmt.Sprintf("Hola %s %s, esta es una notificación de prueba.", actor.Name, actor.Lastname),
		Data:  map[string]interface{}{"type": "test"},
	})
}

func (s *notificationService) SendToUser(ctx context.Context, actor *authz.Identity, userID uuid.UUID, req dto.SendNotificationRequest) (dto.SendResponse, error) {
	target, err := s.employees.FindWithAccess(ctx, userID)
	if err != nil {
		return dto.SendResponse{}, notFound(err, "Employee not found")
	}
	if err := authz.Authorize(actor, authz.SuperuserRequired, authz.TenantMatch(target.EnterpriseID)); err != nil {
		return dto.SendResponse{}, err
	}
	return s.fanOut(ctx, target.ID, infra.PushMessage{Title: req.Title, Body: req.Message, Data: req.Data})
}

// fanOut pushes msg to every active token of userID. Only tokens Expo reports
// as unregistered are deactivated; failures never fail the request.
func (s *notificationService) fanOut(ctx context.Context, userID uuid.UUID, msg infra.PushMessage) (dto.SendResponse, error) {
	tokens, err := s.tokens.ListByUser(ctx, userID, true)
	if err != nil {
		return dto.SendResponse{}, err
	}
	res := dto.SendResult{Total: len(tokens), TokensToDeactivate: []uuid.UUID{}}
	for _, t := range tokens {
		m := msg
		m.To = t.Token
		m.Sound = "default"
		if err := s.pusher.Push(ctx, m); err != nil {
			log.Warn().Err(err).Str("token_id", t.ID.String()).Msg("notifications: push failed")
			res.Failed++
			if errors.Is(err, infra.ErrDeviceNotRegistered) {
				res.TokensToDeactivate = append(res.TokensToDeactivate, t.ID)
			}
			continue
		}
		res.Successful++
	}
	if len(res.TokensToDeactivate) > 0 {
		if err := s.tokens.Deactivate(ctx, res.TokensToDeactivate...); err != nil {
			log.Error().Err(err).Msg("notifications: failed to deactivate tokens")
		}
	}
	if res.Total == 0 {
		return dto.SendResponse{Message: "No active tokens for user", Results: res}, nil
	}
	return dto.SendResponse{Message: "Notifications sent", Results: res}, nil
}
