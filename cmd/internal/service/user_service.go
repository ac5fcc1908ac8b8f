package service

import (
	"excelbot/cmd/internal/contract"
	"excelbot/cmd/internal/domain/entity"
	"excelbot/cmd/internal/utils"
	"excelbot/cmd/internal/utils/boterror"

	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	Register(user *entity.User) error
	FindAllIDs() ([]int64, error)
	Count() (int64, error)
}

type DefaultUserService struct {
	UserRepo UserRepository
}

func NewUserService(userRepo UserRepository) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo}
}

// Welcome registers actor on its first /start and greets it.
func (u *DefaultUserService) Welcome(actor *entity.User) (*contract.Reply, boterror.ErrorResponse) {
	user := &entity.User{
		ID:          actor.ID,
		DisplayName: actor.DisplayName,
		JoinedAt:    utils.NowUTC(),
	}

	if err := u.UserRepo.Register(user); err != nil {
		log.Errorf("failed to register user %d: %v", actor.ID, err)
		return nil, boterror.InternalError
	}
	return contract.HTML(welcomeText(utils.MentionHTML(actor.ID, actor.DisplayName))), nil
}

func (u *DefaultUserService) Help() *contract.Reply {
	return contract.HTML(helpText)
}
