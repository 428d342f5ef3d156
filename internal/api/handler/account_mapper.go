package handler

import (
	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Login:     req.Login,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}

func toUpdateAccountInput(req updateAccountRequest) ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}

// --- Domain → Response ---

// toAccountResponse never exposes the password digest.
func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		Login:     a.Login,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Roles:     a.Roles.Strings(),
	}
}

func toRolesResponse(login string, roles domain.RoleSet) rolesResponse {
	return rolesResponse{
		Login: login,
		Roles: roles.Strings(),
	}
}
