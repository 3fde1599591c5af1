package controller

import (
	"strings"
	"testing"

	"github.com/Freeeeeet/reservas_bot/internal/controller/handlers"
	"github.com/stretchr/testify/assert"
)

func TestCommandsMatchHandlers(t *testing.T) {
	registered := []string{
		handlers.CmdStart,
		handlers.CmdFecha,
		handlers.CmdHorario,
		handlers.CmdImagen,
		handlers.CmdReservar,
		handlers.CmdCancelar,
		handlers.CmdHistorial,
		handlers.CmdAyuda,
	}

	cmds := Commands()
	assert.Len(t, cmds, len(registered))
	for i, cmd := range cmds {
		assert.Equal(t, registered[i], "/"+cmd.Command)
		assert.False(t, strings.HasPrefix(cmd.Command, "/"))
		assert.NotEmpty(t, cmd.Description)
	}
}
