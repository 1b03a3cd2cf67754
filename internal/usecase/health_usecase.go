package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	mailProvider string
}

func NewHealthUsecase(mailProvider string) HealthUsecase {
	return &healthUsecase{mailProvider: mailProvider}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status":        "ok",
		"mail_provider": u.mailProvider,
	}
}
