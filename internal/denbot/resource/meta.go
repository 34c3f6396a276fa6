package resource

const (
	ProjectName    = "denbot"
	ProjectVersion = "1.0.0"
	TgDenUrl       = "https://t.me/denbot"
	GithubDenUrl   = "https://github.com/den-games/denbot"
	BotFatherUrl   = "https://t.me/BotFather"
)

const Graffiti = `
     _            _           _
  __| | ___ _ __ | |__   ___ | |_
 / _' |/ _ \ '_ \| '_ \ / _ \| __|
| (_| |  __/ | | | |_) | (_) | |_
 \__,_|\___|_| |_|_.__/ \___/ \__|
`

const GreetingCLI = "%s version %s\n%s\n%s\n\n"

// RoleIcon returns the chat icon for a role name produced by the engine.
func RoleIcon(role string) string {
	switch role {
	case "wolf":
		return IconWolf
	case "fox":
		return IconFox
	case "hare":
		return IconHare
	case "mole":
		return IconMole
	case "beaver":
		return IconBeaver
	default:
		return IconForest
	}
}

// RoleName is the display name for a role in chat messages.
func RoleName(role string) string {
	switch role {
	case "wolf":
		return "Волк"
	case "fox":
		return "Лиса"
	case "hare":
		return "Заяц"
	case "mole":
		return "Крот"
	case "beaver":
		return "Бобёр"
	default:
		return "Зверь"
	}
}

// RoleDescription is the private role card body.
func RoleDescription(role string) string {
	switch role {
	case "wolf":
		return TextRoleDescWolf
	case "fox":
		return TextRoleDescFox
	case "hare":
		return TextRoleDescHare
	case "mole":
		return TextRoleDescMole
	case "beaver":
		return TextRoleDescBeaver
	default:
		return ""
	}
}
