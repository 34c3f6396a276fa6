package resource

import "github.com/enescakir/emoji"

// role and phase icons
const (
	IconForest = "\U0001F332"
	IconWolf   = "\U0001F43A"
	IconFox    = "\U0001F98A"
	IconHare   = "\U0001F430"
	IconMole   = "\U0001F9A1"
	IconBeaver = "\U0001F9AB"
	IconNight  = "\U0001F311"
	IconDay    = "\U0001F305"
	IconScales = "⚖️"
	IconGrave  = "⚰️"
)

// manage text messages
var (
	TextGreetingMsg = IconForest + IconForest + IconForest + " Привет, %s\n\n" +
		"Это @denbot " + emoji.Robot.String() + " - бот для игры в лесную мафию. " +
		"Жители леса засыпают, хищники выходят на охоту, а днём весь лес решает, кого изгнать\n\n" +
		"Добавь бота в групповой чат и напиши " + CmdNewGame + ", чтобы собрать игру\n\n" +
		"*Правила:* " + CmdRules + "\n\n" +
		"*Список команд:*\n" +
		CmdNewGame + " - создать игру в групповом чате\n" +
		CmdJoin + " - присоединиться к набору\n" +
		CmdLeave + " - покинуть набор\n" +
		CmdPlay + " - начать игру (создатель игры)\n" +
		CmdStop + " - завершить игру досрочно (админ)\n" +
		CmdExtend + " - продлить текущую фазу (админ)\n" +
		CmdNext + " - завершить текущую фазу (админ)\n" +
		CmdProfile + " - посмотреть профиль игрока\n\n" +
		"Чтобы получать ночные задания, сначала напиши боту в личные сообщения " + CmdStart

	TextRulesMsg = emoji.Bookmark.String() + " *Правила лесной мафии*\n\n" +
		IconWolf + " *Волки* - каждую ночь выбирают жертву. Побеждают, когда волков не меньше, чем остальных\n\n" +
		IconFox + " *Лиса* - ворует припасы. Зверь без припасов погибает от голода. Лиса играет за хищников, но волки не знают её\n\n" +
		IconBeaver + " *Бобёр* - возвращает украденные припасы и защищает зверя до следующей ночи. Его кладовую лисе не обокрасть\n\n" +
		IconMole + " *Крот* - роет ход к чужой норе и узнаёт роль. Если зверь ночью выходил из норы, крот застаёт лишь пустую постель\n\n" +
		IconHare + " *Зайцы* - мирные жители леса. Днём все звери голосуют за изгнание подозрительных\n\n" +
		"В первую ночь волки не охотятся - лес знакомится\n\n" +
		"Игра идёт от %d до %d игроков"

	TextChatOnlyMsg    = "Собирать игру можно только в групповом чате. Добавь меня в чат и напиши " + CmdNewGame
	TextPrivateFirst   = "Сначала напиши мне в личные сообщения " + CmdStart + ", иначе я не смогу прислать тебе роль"
	TextGameNotFound   = "В этом чате нет игры. Создай её командой " + CmdNewGame
	TextGameInProgress = "Игра уже идёт, дождись следующей"
	TextNotAnAdmin     = "Для этой команды нужны права администратора"
	TextBannedMsg      = "Бан"

	TextGameCreatedMsg = IconForest + " *Лес собирается!*\n\n" +
		"Жми " + CmdJoin + ", чтобы вступить в игру\n" +
		"Нужно от %d до %d игроков\n\n" +
		"Создатель игры начинает командой " + CmdPlay
	TextPlayerJoinedMsg    = "%s вступает в лес. Игроков: %d"
	TextPlayerLeftMsg      = "%s передумал. Игроков: %d"
	TextAlreadyJoinedMsg   = "Ты уже в игре"
	TextNotEnoughPlayers   = "Недостаточно игроков, нужно хотя бы %d"
	TextTooManyPlayers     = "Мест больше нет, максимум %d игроков"
	TextOnlyAuthorCanStart = "Начать игру может только её создатель"

	TextRolesDealtMsg = IconNight + " Роли разосланы в личные сообщения. Лес засыпает..."

	TextNightMsg    = IconNight + " *Ночь %d*\n\nЛес спит. У зверей с ночными делами есть %s, задания ждут в личных сообщениях"
	TextDayMsg      = IconDay + " *День %d*\n\nЛес просыпается и обсуждает ночные события. Обсуждение: %s"
	TextDayAliveMsg = IconForest + " В лесу %d %s"
	TextVotingMsg   = emoji.Loudspeaker.String() + " *Голосование, раунд %d*\n\nКого изгоняем из леса? На решение есть %s"

	TextWolfKillMsg   = IconWolf + " Этой ночью волки добрались до *%s*"
	TextFoxStarvedMsg = IconFox + " *%s* не пережил голодную ночь - кладовая пуста"
	TextQuietNightMsg = emoji.Star.String() + " Ночь прошла спокойно, все проснулись в своих норах"

	TextExiledMsg  = emoji.CrossMark.String() + " Лес изгоняет *%s*. Это был %s"
	TextNoExileMsg = IconScales + " Лес не смог договориться, никто не изгнан"

	TextPredatorsWonMsg        = IconWolf + " *Хищники победили!* Лес в их власти"
	TextHerbivoresWonMsg       = IconHare + " *Мирные звери победили!* В лесу снова спокойно"
	TextGameOverRoles          = "\n\n*Кем были звери:*\n"
	TextGameStoppedMsg         = "Игра остановлена администратором"
	TextSendProfileMsg         = "Пришли username игрока, статистику которого хочешь посмотреть, например @username"
	TextProfileCmdUserNotFound = "Игрок с таким username не найден, возможно он ещё не играл в лесу"
	TextGameCrashMsg           = "Из-за ошибки в работе сервиса игра была аварийно завершена, попробуйте создать игру заново"
	TextMatchWarnMsg           = emoji.BrokenHeart.String() + " К сожалению " + emoji.Robot.String() + " бот обновляется, игра продолжится через несколько минут"

	TextReasonTimeLimit    = "Игра длилась слишком долго, лес устал"
	TextReasonRoundLimit   = "Раунды закончились, хищники так и не взяли верх"
	TextReasonLastPair     = "В лесу остались лишь двое, охота окончена"
	TextReasonFewSurvivors = "Зверей почти не осталось, лес пустеет"
)

// private night texts
var (
	TextYourRoleMsg     = "Твоя роль - %s %s\n\n%s"
	TextWolfPackMsg     = "\n\nТвоя стая:\n%s"
	TextNightActionMsg  = "%s Ночь %d. Выбирай цель:"
	TextActionAccepted  = "Принято"
	TextActionRejected  = "Сейчас так нельзя"
	TextActionSkipped   = "Ты остаёшься в норе"
	TextVoteAccepted    = "Голос учтён"
	TextNoTargetsMsg    = "Этой ночью для тебя нет целей, спи спокойно"
	TextFoxStoleMsg     = IconFox + " Ты стащила припас у %s"
	TextFoxStarvedFox   = IconFox + " Ты забрала последний припас, %s не доживёт до утра"
	TextFoxEmptyMsg     = IconFox + " Нора %s пуста, поживиться нечем"
	TextFoxBlockedMsg   = IconFox + " Кладовая %s под охраной бобра, ничего не вышло"
	TextBeaverDoneMsg   = IconBeaver + " Ты вернул %s припасы (%d) и укрепил нору до следующей ночи"
	TextBeaverNoneMsg   = IconBeaver + " У %s ничего не украдено, помощь не нужна"
	TextBeaverEmptyMsg  = IconBeaver + " Нора %s опустела, помогать уже некому"
	TextMoleAtHomeMsg   = IconMole + " Ты прорыл ход к норе %s. Там спит %s!"
	TextMoleAwayMsg     = IconMole + " Нора %s пуста - хозяин этой ночью где-то бродил"
	TextMoleEmptyMsg    = IconMole + " В норе %s больше никто не живёт"
	TextRoleDescWolf    = "Каждую ночь стая выбирает жертву. Днём притворяйся мирным зверем"
	TextRoleDescFox     = "Воруй припасы по ночам. Зверь без припасов погибает. Волки не знают тебя, а ты их"
	TextRoleDescHare    = "У тебя нет ночных дел. Днём слушай лес и голосуй за хищников"
	TextRoleDescMole    = "Каждую ночь узнавай роль одного зверя. Не выдай себя"
	TextRoleDescBeaver  = "Возвращай украденные припасы и защищай норы. Тебя лисе не обокрасть"
	TextSkipNightButton = "Остаться в норе"
	TextSkipVoteButton  = IconScales + " Воздержаться"
)
