package denbot

import (
	"sort"
	"strconv"

	statModel "github.com/den-games/denbot/internal/database/stat/model"
	userModel "github.com/den-games/denbot/internal/database/user/model"
	"github.com/den-games/denbot/internal/denbot/resource"
	"github.com/den-games/denbot/internal/strpool"
	"github.com/enescakir/emoji"
)

func renderProfile(u userModel.User, stat statModel.AggregationStat) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()
	buf.WriteString(resource.IconForest)
	buf.WriteString(" Профиль игрока ")
	buf.WriteString("*")
	buf.WriteString(u.FirstName)
	buf.WriteString("*")
	buf.WriteString("\n\n")
	buf.WriteString(emoji.VideoGame.String())
	buf.WriteString(" Сыграно: ")
	buf.WriteString(strconv.Itoa(stat.Count))
	buf.WriteString("\n")
	buf.WriteString(emoji.Star.String() + " Побед: ")
	buf.WriteString(strconv.Itoa(stat.Wins))
	buf.WriteString("\n")
	buf.WriteString(resource.IconDay + " Дожил до конца: ")
	buf.WriteString(strconv.Itoa(stat.Survived))
	buf.WriteString("\n")
	buf.WriteString(resource.IconScales + " Изгнан голосованием: ")
	buf.WriteString(strconv.Itoa(stat.Exiled))
	buf.WriteString("\n")
	buf.WriteString(emoji.Bookmark.String())
	buf.WriteString(" Средняя длина игры: ")
	buf.WriteString(strconv.Itoa(stat.AvgRounds))
	buf.WriteString(" р.")

	if len(stat.Roles) > 0 {
		buf.WriteString("\n\nРоли:\n")
		roles := make([]string, 0, len(stat.Roles))
		for role := range stat.Roles {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			buf.WriteString(resource.RoleIcon(role))
			buf.WriteString(" ")
			buf.WriteString(resource.RoleName(role))
			buf.WriteString(": ")
			buf.WriteString(strconv.Itoa(stat.Roles[role]))
			buf.WriteString("\n")
		}
	}

	return buf.String()
}
