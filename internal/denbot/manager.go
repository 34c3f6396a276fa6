package denbot

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	stateDb "github.com/den-games/denbot/internal/database/gamestate/database"
	statDb "github.com/den-games/denbot/internal/database/stat/database"
	statModel "github.com/den-games/denbot/internal/database/stat/model"
	userDb "github.com/den-games/denbot/internal/database/user/database"
	userModel "github.com/den-games/denbot/internal/database/user/model"
	"github.com/den-games/denbot/internal/denbot/game"
	"github.com/den-games/denbot/internal/denbot/match"
	"github.com/den-games/denbot/internal/denbot/resource"
	"github.com/den-games/denbot/internal/logging"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

var ErrCommandNotFound = fmt.Errorf("command not found")

func NewManager(tg *tgbotapi.BotAPI, config *Config, userDb *userDb.DB, statDb *statDb.DB, stateDb *stateDb.DB) *manager {
	return &manager{
		tg:                  tg,
		config:              config,
		playingSessions:     map[int64]*match.Session{},
		userPlayingSessions: map[int64]*match.Session{},
		cmdCb:               map[int64]func(string) error{},
		userDb:              userDb,
		statDb:              statDb,
		stateDb:             stateDb,
	}
}

type manager struct {
	mtx sync.RWMutex

	tg     *tgbotapi.BotAPI
	config *Config
	// key: group chat id
	playingSessions map[int64]*match.Session
	// key: userId of a registered player
	userPlayingSessions map[int64]*match.Session
	// command callbacks for two-step private commands
	cmdCb      map[int64]func(string) error
	userDb     *userDb.DB
	statDb     *statDb.DB
	stateDb    *stateDb.DB
	cancel     func()
	ctxSess    context.Context
	cancelSess func()
}

func (m *manager) Stop() {
	m.cancel()
}

func (m *manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.ctxSess, m.cancelSess = context.WithCancel(context.Background())
	upd := tgbotapi.NewUpdate(0)
	upd.Timeout = int(m.config.TgBotPollTimeout.Seconds())
	updates, err := m.tg.GetUpdatesChan(upd)
	if err != nil {
		return fmt.Errorf("tg get updates chan: %v", err)
	}

	if err := m.deserialize(); err != nil {
		return fmt.Errorf("deserialize: %v", err)
	}

	wg := &sync.WaitGroup{}
	poolWorkerNum := runtime.NumCPU()
	wg.Add(poolWorkerNum)

	for i := 0; i < poolWorkerNum; i++ {
		go m.pool(ctx, wg, updates)
	}

	wg.Wait()
	m.shutdown()
	return nil
}

func (m *manager) serialize(session *match.Session) error {
	if err := m.stateDb.Add(session.ToState()); err != nil {
		return fmt.Errorf("state db add: %v", err)
	}

	return nil
}

func (m *manager) deserialize() error {
	states, err := m.stateDb.FetchAll()
	if err != nil && !errors.Is(err, stateDb.ErrEntryNotFound) {
		return fmt.Errorf("state db fetch all: %v", err)
	}

	m.mtx.Lock()
	for _, state := range states {
		session := match.NewFromSnapshot(match.Config{
			ChatID:     state.Snapshot.ChatID,
			ThreadID:   state.Snapshot.ThreadID,
			AuthorID:   state.AuthorID,
			AuthorName: state.AuthorName,
			TestMode:   state.Snapshot.TestMode,
			Tg:         m.tg,
			GameConfig: m.config.GameConfig(),
			Timeout:    m.config.PlayingTimeout,
			DoneFn:     m.matchDoneFn,
			WarnFn:     m.matchWarnFn,
		}, state.Snapshot)
		session.Run(m.ctxSess)
		m.playingSessions[session.ChatID()] = session
		for _, player := range state.Snapshot.Players {
			m.userPlayingSessions[player.UserID] = session
		}
	}
	m.mtx.Unlock()

	if len(states) > 0 {
		if err := m.stateDb.Clean(); err != nil {
			if !errors.Is(err, stateDb.ErrBucketNotFound) {
				return fmt.Errorf("state db clean: %v", err)
			}
		}
	}

	return nil
}

func (m *manager) appendStat(session *match.Session) error {
	winner, ok := session.Result()
	if !ok {
		return nil
	}

	snap := session.Snapshot()
	for _, player := range snap.Players {
		stat := statModel.NewStat(player.UserID)
		stat.ChatID = snap.ChatID
		stat.Role = player.Role.String()
		stat.Team = player.Team.String()
		stat.Won = player.Team == winner
		stat.Survived = player.Alive
		stat.Exiled = session.WasExiled(player.UserID)
		stat.Rounds = snap.Round
		stat.PlayersNum = len(snap.Players)

		if err := m.statDb.Add(stat); err != nil {
			return fmt.Errorf("stat db add: %v", err)
		}
	}

	return nil
}

func (m *manager) shutdown() {
	m.cancelSess()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		m.mtx.RLock()
		n := len(m.playingSessions)
		m.mtx.RUnlock()
		if n == 0 {
			return
		}
		<-ticker.C
	}
}

func (m *manager) pool(ctx context.Context, wg *sync.WaitGroup, updCh tgbotapi.UpdatesChannel) {
	defer wg.Done()
	logger := logging.FromContext(ctx).Named("manager.pool")
	for {
		select {
		case update := <-updCh:
			u, err := m.recvUser(update)
			if err != nil {
				logger.Errorf("recv user: %v", err)
				continue
			}
			if update.Message != nil {
				if err := m.handleMessage(u, update); err != nil {
					logger.Errorf("handle message: %v", err)
				}
			}
			if update.CallbackQuery != nil {
				if err := m.handleCallbackQuery(u, update); err != nil {
					logger.Errorf("handle callback query: %v", err)
				}
			}
		case <-ctx.Done():
			// shutdown
			return
		}
	}
}

func (m *manager) handleMessage(u userModel.User, upd tgbotapi.Update) error {
	ok, err := m.isActive(u, upd.Message.Chat.ID)
	if err != nil {
		return fmt.Errorf("is active: %v", err)
	}
	if !ok {
		return nil
	}

	if upd.Message.Chat.IsGroup() || upd.Message.Chat.IsSuperGroup() {
		return m.handleGroupCommand(u, upd)
	}

	return m.handlePrivateCommand(u, upd)
}

func (m *manager) handleGroupCommand(u userModel.User, upd tgbotapi.Update) error {
	chatID := upd.Message.Chat.ID
	cmd, arg := splitCommand(upd.Message.Text)

	switch cmd {
	case resource.CmdNewGame:
		if err := m.handleNewGame(u, upd, arg == resource.CmdArgTest); err != nil {
			return fmt.Errorf("handle new game: %v", err)
		}
	case resource.CmdJoin:
		if err := m.handleJoin(u, chatID); err != nil {
			return fmt.Errorf("handle join: %v", err)
		}
	case resource.CmdLeave:
		if session, ok := m.playingSession(chatID); ok {
			err := session.Leave(u.ID)
			switch {
			case err == nil:
				m.mtx.Lock()
				delete(m.userPlayingSessions, u.ID)
				m.mtx.Unlock()
			case errors.Is(err, game.ErrUnknownActor), errors.Is(err, game.ErrWrongPhase):
			default:
				return fmt.Errorf("leave: %v", err)
			}
		}
	case resource.CmdPlay:
		if err := m.handlePlay(u, chatID); err != nil {
			return fmt.Errorf("handle play: %v", err)
		}
	case resource.CmdStop:
		ok, err := m.isAdmin(u, chatID)
		if err != nil {
			return fmt.Errorf("is admin: %v", err)
		}
		if !ok {
			return nil
		}
		if session, found := m.playingSession(chatID); found {
			session.Terminate()
		}
	case resource.CmdExtend:
		ok, err := m.isAdmin(u, chatID)
		if err != nil {
			return fmt.Errorf("is admin: %v", err)
		}
		if !ok {
			return nil
		}
		if session, found := m.playingSession(chatID); found {
			if err := session.Extend(); err != nil && !errors.Is(err, game.ErrWrongPhase) {
				return fmt.Errorf("extend: %v", err)
			}
		}
	case resource.CmdNext:
		ok, err := m.isAdmin(u, chatID)
		if err != nil {
			return fmt.Errorf("is admin: %v", err)
		}
		if !ok {
			return nil
		}
		if session, found := m.playingSession(chatID); found {
			if err := session.Advance(); err != nil && !errors.Is(err, game.ErrWrongPhase) {
				return fmt.Errorf("advance: %v", err)
			}
		}
	case resource.CmdRules:
		if err := m.sendRules(chatID); err != nil {
			return fmt.Errorf("send rules: %v", err)
		}
	}

	return nil
}

func (m *manager) handlePrivateCommand(u userModel.User, upd tgbotapi.Update) error {
	chatID := upd.Message.Chat.ID
	cmd, _ := splitCommand(upd.Message.Text)

	switch cmd {
	case resource.CmdStart:
		if err := m.handleStart(u, chatID); err != nil {
			return fmt.Errorf("handle start: %v", err)
		}
	case resource.CmdRules:
		if err := m.sendRules(chatID); err != nil {
			return fmt.Errorf("send rules: %v", err)
		}
	case resource.CmdProfile:
		if err := m.handleProfileCmd(u, chatID); err != nil {
			return fmt.Errorf("handle profile: %v", err)
		}
	case resource.CmdNewGame, resource.CmdJoin, resource.CmdPlay:
		msg := tgbotapi.NewMessage(chatID, resource.TextChatOnlyMsg)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
	default:
		if cb, ok := m.callback(u.ID); ok {
			if err := cb(upd.Message.Text); err != nil {
				return fmt.Errorf("execute cb: %v", err)
			}
		}
	}

	return nil
}

func (m *manager) handleCallbackQuery(u userModel.User, upd tgbotapi.Update) error {
	// vote buttons live in the group chat, night menus in private chats;
	// both resolve to the same session
	if upd.CallbackQuery.Message != nil {
		if session, ok := m.playingSession(upd.CallbackQuery.Message.Chat.ID); ok {
			return session.Execute(u.ID, upd)
		}
	}

	if session, ok := m.userPlayingSession(u.ID); ok {
		return session.Execute(u.ID, upd)
	}

	return nil
}

func (m *manager) handleStart(u userModel.User, chatID int64) error {
	if u.PrivateChatID == 0 {
		u.PrivateChatID = chatID
		if err := m.userDb.Store(u); err != nil {
			return fmt.Errorf("userdb store: %v", err)
		}
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextGreetingMsg, u.FirstName))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}
	return nil
}

func (m *manager) sendRules(chatID int64) error {
	cfg := m.config.GameConfig()
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextRulesMsg, cfg.MinPlayers, cfg.MaxPlayers))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}

	return nil
}

func (m *manager) handleNewGame(u userModel.User, upd tgbotapi.Update, testMode bool) error {
	chatID := upd.Message.Chat.ID

	if session, ok := m.playingSession(chatID); ok {
		if session.Phase() != game.PhaseGameOver {
			msg := tgbotapi.NewMessage(chatID, resource.TextGameInProgress)
			if _, err := m.tg.Send(msg); err != nil {
				return fmt.Errorf("send msg: %v", err)
			}
			return nil
		}
	}

	if testMode {
		ok, err := m.isAdmin(u, chatID)
		if err != nil {
			return fmt.Errorf("is admin: %v", err)
		}
		if !ok {
			return nil
		}
	}

	session := match.NewSession(match.Config{
		ChatID:     chatID,
		AuthorID:   u.ID,
		AuthorName: u.FirstName,
		TestMode:   testMode,
		Tg:         m.tg,
		GameConfig: m.config.GameConfig(),
		Timeout:    m.config.PlayingTimeout,
		DoneFn:     m.matchDoneFn,
		WarnFn:     m.matchWarnFn,
	})

	m.mtx.Lock()
	m.playingSessions[chatID] = session
	m.mtx.Unlock()
	session.Run(m.ctxSess)

	cfg := m.config.GameConfig()
	min := cfg.MinPlayers
	if testMode {
		min = cfg.MinPlayersTest
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextGameCreatedMsg, min, cfg.MaxPlayers))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}

	return nil
}

func (m *manager) handleJoin(u userModel.User, chatID int64) error {
	session, ok := m.playingSession(chatID)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, resource.TextGameNotFound)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
		return nil
	}

	if u.PrivateChatID == 0 {
		msg := tgbotapi.NewMessage(chatID, resource.TextPrivateFirst)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
		return nil
	}

	err := session.Join(u.ID, u.FirstName)
	switch {
	case err == nil:
		m.mtx.Lock()
		m.userPlayingSessions[u.ID] = session
		m.mtx.Unlock()
	case errors.Is(err, game.ErrTooManyPlayers):
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextTooManyPlayers, m.config.GameConfig().MaxPlayers))
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
	case errors.Is(err, game.ErrWrongPhase):
		msg := tgbotapi.NewMessage(chatID, resource.TextGameInProgress)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
	case errors.Is(err, game.ErrIllegalTarget):
		msg := tgbotapi.NewMessage(chatID, resource.TextAlreadyJoinedMsg)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
	default:
		return fmt.Errorf("join: %v", err)
	}

	return nil
}

func (m *manager) handlePlay(u userModel.User, chatID int64) error {
	session, ok := m.playingSession(chatID)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, resource.TextGameNotFound)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
		return nil
	}

	err := session.Start(u.ID)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrInsufficientPlayers):
		cfg := m.config.GameConfig()
		min := cfg.MinPlayers
		if session.Snapshot().TestMode {
			min = cfg.MinPlayersTest
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(resource.TextNotEnoughPlayers, min))
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
	case errors.Is(err, game.ErrWrongPhase):
		msg := tgbotapi.NewMessage(chatID, resource.TextGameInProgress)
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}
	default:
		return fmt.Errorf("start: %v", err)
	}

	return nil
}

func (m *manager) handleProfileCmd(u userModel.User, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, resource.TextSendProfileMsg)
	if _, err := m.tg.Send(msg); err != nil {
		return fmt.Errorf("send msg: %v", err)
	}

	m.registerCallback(u.ID, func(username string) error {
		defer func() {
			m.mtx.Lock()
			defer m.mtx.Unlock()
			delete(m.cmdCb, u.ID)
		}()

		username = strings.TrimPrefix(username, "@")

		target, err := m.userDb.FetchByUsername(username)
		if err != nil {
			if errors.Is(err, userDb.ErrNotFound) {
				msg := tgbotapi.NewMessage(chatID, resource.TextProfileCmdUserNotFound)
				if _, err := m.tg.Send(msg); err != nil {
					return fmt.Errorf("send msg: %v", err)
				}
				return nil
			}

			return fmt.Errorf("fetch by username: %v", err)
		}

		stat, err := m.statDb.FetchProfileStat(target.ID)
		if err != nil && !errors.Is(err, statDb.ErrNotFound) {
			return fmt.Errorf("fetch profile stat: %v", err)
		}

		msg := tgbotapi.NewMessage(chatID, renderProfile(target, stat))
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := m.tg.Send(msg); err != nil {
			return fmt.Errorf("send msg: %v", err)
		}

		return nil
	})

	return nil
}

func (m *manager) matchWarnFn(session *match.Session) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if err := m.serialize(session); err != nil {
		return fmt.Errorf("serialize match session: %v", err)
	}

	for _, player := range session.Snapshot().Players {
		delete(m.userPlayingSessions, player.UserID)
	}

	delete(m.playingSessions, session.ChatID())

	return nil
}

func (m *manager) matchDoneFn(session *match.Session) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if err := m.appendStat(session); err != nil {
		return fmt.Errorf("append stat: %v", err)
	}
	for _, player := range session.Snapshot().Players {
		delete(m.userPlayingSessions, player.UserID)
	}

	session.Stop()
	delete(m.playingSessions, session.ChatID())

	return nil
}

func (m *manager) registerCallback(userID int64, fn func(string) error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.cmdCb[userID] = fn
}

func (m *manager) callback(userID int64) (func(msg string) error, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	cb, ok := m.cmdCb[userID]
	return cb, ok
}

func (m *manager) playingSession(chatID int64) (*match.Session, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	session, ok := m.playingSessions[chatID]

	return session, ok
}

func (m *manager) userPlayingSession(userID int64) (*match.Session, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	session, ok := m.userPlayingSessions[userID]

	return session, ok
}

func (m *manager) recvUser(upd tgbotapi.Update) (userModel.User, error) {
	var tgUser *tgbotapi.User
	var u userModel.User
	switch {
	case upd.CallbackQuery != nil:
		tgUser = upd.CallbackQuery.From
	case upd.Message != nil:
		tgUser = upd.Message.From
	default:
		return u, ErrCommandNotFound
	}

	u, err := m.userDb.Fetch(int64(tgUser.ID))
	if err != nil {
		if !errors.Is(err, userDb.ErrNotFound) {
			return u, fmt.Errorf("userdb fetch: %v", err)
		}

		username := strings.TrimPrefix(tgUser.UserName, "@")

		newUser := userModel.User{
			ID:           int64(tgUser.ID),
			FirstName:    tgUser.FirstName,
			LastName:     tgUser.LastName,
			LanguageCode: tgUser.LanguageCode,
			Username:     tgUser.UserName,
			Admin:        username != "" && username == m.config.Admin,
			CreatedAt:    time.Now(),
		}

		if err := m.userDb.Store(newUser); err != nil {
			return u, fmt.Errorf("userdb store: %v", err)
		}
		u = newUser
	}

	return u, nil
}

func splitCommand(text string) (cmd, arg string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}

	// group commands arrive as /cmd@botname
	cmd = fields[0]
	if idx := strings.IndexByte(cmd, '@'); idx > 0 {
		cmd = cmd[:idx]
	}

	if len(fields) > 1 {
		arg = fields[1]
	}

	return cmd, arg
}
