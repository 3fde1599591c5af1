package handlers

// Команды бота
const (
	CmdStart     = "/start"
	CmdFecha     = "/fecha"
	CmdHorario   = "/horario"
	CmdImagen    = "/imagen"
	CmdReservar  = "/reservar"
	CmdCancelar  = "/cancelar"
	CmdHistorial = "/historial"
	CmdAyuda     = "/ayuda"
)

// Сколько попыток показывает /historial
const historyLimit = 5

// Подсказки шагов диалога
const (
	promptDate     = "📅 Escribe la fecha en formato AAAA-MM-DD, por ejemplo 2024-05-01\n\nPara cancelar usa /cancelar"
	promptNombre   = "📝 Datos de contacto\n\nPaso 1 de 4: ¿Cuál es tu nombre?\n\nPara cancelar usa /cancelar"
	promptEmail    = "Paso 2 de 4: ¿Cuál es tu email?"
	promptTelefono = "Paso 3 de 4: ¿Cuál es tu teléfono?"
	promptMensaje  = "Paso 4 de 4: ¿Quieres dejar un mensaje? Escribe \"-\" para omitirlo."
)
