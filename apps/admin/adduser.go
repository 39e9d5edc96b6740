package main

import (
	"context"
	"time"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(nome, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	nome = core.CleanString(nome)
	email = core.CleanString(email, true /* lower */)

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Nome:      nome,
			Email:     email,
			CreatedAt: now,
		}
	}
	usr.Nome = nome
	usr.IsAtivo = true
	if isAdmin {
		usr.Roles = []string{user.RoleAdmin}
	}
	if err := usr.SetSenha(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = now

	if usr.ID == 0 {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
