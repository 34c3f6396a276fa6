package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/den-games/denbot/internal/denbot/game"
	"github.com/den-games/denbot/internal/denbot/resource"
	"github.com/den-games/denbot/internal/logging"
	"github.com/den-games/denbot/internal/util"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"golang.org/x/sync/errgroup"
)

const sendingWorkerNum = 2

// NewSession wires a fresh game to the chat it lives in. The controller owns
// all game state, the session only translates between telegram and the engine.
func NewSession(config Config) *Session {
	g := game.NewGame(config.ChatID, config.ThreadID, config.TestMode)
	return &Session{
		Config:    config,
		tg:        config.Tg,
		ctrl:      game.NewController(g, config.GameConfig, time.Now().UnixNano()),
		sndCh:     make(chan tgbotapi.Chattable, 10),
		doneFn:    config.DoneFn,
		warnFn:    config.WarnFn,
		CreatedAt: time.Now(),
	}
}

// NewFromSnapshot resurrects a serialized game, deadline included. An expired
// deadline advances the phase as soon as the controller loop starts.
func NewFromSnapshot(config Config, snap game.Snapshot) *Session {
	s := NewSession(config)
	s.ctrl = game.NewController(game.RestoreGame(snap), config.GameConfig, time.Now().UnixNano())
	return s
}

type Session struct {
	Config Config

	CreatedAt time.Time

	tg   *tgbotapi.BotAPI
	ctrl *game.Controller

	sndCh  chan tgbotapi.Chattable
	doneFn func(session *Session) error
	warnFn func(session *Session) error
	cancel func()
	sema   sync.Once

	// deaths seen since the last night banner, for the quiet night message
	mtx         sync.Mutex
	nightDeaths int
	exiled      map[int64]bool
	winner      game.Team
	finished    bool
}

// Result reports the winning team once the game is over.
func (r *Session) Result() (game.Team, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.winner, r.finished
}

// WasExiled reports whether the daily vote sent the player out of the forest.
func (r *Session) WasExiled(userID int64) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.exiled[userID]
}

func (r *Session) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Session) ChatID() int64 {
	return r.ctrl.ChatID()
}

func (r *Session) Phase() game.Phase {
	return r.ctrl.Phase()
}

func (r *Session) Snapshot() game.Snapshot {
	return r.ctrl.Snapshot()
}

func (r *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.Config.Timeout)
	r.cancel = cancel
	logger := logging.FromContext(ctx)
	r.sema.Do(func() {
		r.ctrl.Run(ctx)
		go r.consume(ctx)
		for i := 0; i < sendingWorkerNum; i++ {
			go r.sendingWorker(ctx)
		}
	})
	logger.Infof("The game session created, chat: %d, author: %s", r.Config.ChatID, r.Config.AuthorName)
}

// Join registers a player while the game is waiting. The session reports the
// outcome to the chat, validation errors come back to the caller for a reply.
func (r *Session) Join(userID int64, firstName string) error {
	if err := r.ctrl.AddPlayer(userID, firstName); err != nil {
		return err
	}

	r.groupMsg(fmt.Sprintf(resource.TextPlayerJoinedMsg, firstName, r.ctrl.Snapshot().AliveCount()))
	return nil
}

func (r *Session) Leave(userID int64) error {
	snap := r.ctrl.Snapshot()
	p, ok := snap.Player(userID)
	if !ok {
		return game.ErrUnknownActor
	}

	if err := r.ctrl.RemovePlayer(userID); err != nil {
		return err
	}

	r.groupMsg(fmt.Sprintf(resource.TextPlayerLeftMsg, p.FirstName, len(snap.Players)-1))
	return nil
}

// Start deals the roles. Only the author may start the game.
func (r *Session) Start(userID int64) error {
	if userID != r.Config.AuthorID {
		r.groupMsg(resource.TextOnlyAuthorCanStart)
		return nil
	}

	if err := r.ctrl.StartGame(); err != nil {
		return err
	}

	r.groupMsg(resource.TextRolesDealtMsg)
	return nil
}

// Extend re-arms the current phase timer without resetting submissions.
func (r *Session) Extend() error {
	return r.ctrl.RepeatPhase()
}

// Advance ends the current phase the way the deadline would.
func (r *Session) Advance() error {
	_, err := r.ctrl.AdvancePhase()
	return err
}

// Terminate ends the game on an admin's command.
func (r *Session) Terminate() {
	r.groupMsg(resource.TextGameStoppedMsg)
	r.ctrl.EndGame()
}

// Execute routes one callback query from any chat to the engine.
func (r *Session) Execute(userID int64, upd tgbotapi.Update) error {
	if upd.CallbackQuery == nil {
		return nil
	}

	query := upd.CallbackQuery
	prefix, targetID, ok := resource.ParseQueryData(query.Data)
	if !ok {
		return nil
	}

	var err error
	answer := resource.TextActionAccepted
	switch prefix {
	case resource.NightQueryPrefix:
		p, found := r.ctrl.Snapshot().Player(userID)
		if !found {
			return game.ErrUnknownActor
		}
		err = r.ctrl.SubmitAction(userID, p.Role, targetID)
		if err == nil && targetID == game.SkipTarget {
			answer = resource.TextActionSkipped
		}
	case resource.VoteQueryPrefix:
		err = r.ctrl.SubmitVote(userID, targetID)
		if err == nil {
			answer = resource.TextVoteAccepted
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrIllegalTarget), errors.Is(err, game.ErrUnknownActor):
		answer = resource.TextActionRejected
		err = nil
	default:
		return fmt.Errorf("submit: %w", err)
	}

	if _, err := r.tg.AnswerCallbackQuery(tgbotapi.NewCallback(query.ID, answer)); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}

	return nil
}

// consume renders every engine event in the order the resolver produced it.
func (r *Session) consume(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("match.consume")
	defer r.shutdown(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-r.ctrl.Events():
			if !ok {
				return
			}
			if err := r.render(ev); err != nil {
				logger.Errorf("render event: %v", err)
				r.groupMsg(resource.TextGameCrashMsg)
				r.ctrl.Abort()
			}
		}
	}
}

func (r *Session) render(ev game.Event) error {
	switch ev := ev.(type) {
	case game.RoleAssigned:
		return r.sendRoleCard(ev)
	case game.PhaseEntered:
		return r.renderPhase(ev)
	case game.WolfKill:
		r.markNightDeath()
		r.groupMsg(fmt.Sprintf(resource.TextWolfKillMsg, r.playerName(ev.Victim)))
	case game.FoxStolen:
		r.privateMsg(ev.FoxID, fmt.Sprintf(resource.TextFoxStoleMsg, r.playerName(ev.Target)))
	case game.FoxStarved:
		r.markNightDeath()
		r.privateMsg(ev.FoxID, fmt.Sprintf(resource.TextFoxStarvedFox, r.playerName(ev.Target)))
		r.groupMsg(fmt.Sprintf(resource.TextFoxStarvedMsg, r.playerName(ev.Target)))
	case game.FoxEmpty:
		r.privateMsg(ev.FoxID, fmt.Sprintf(resource.TextFoxEmptyMsg, r.playerName(ev.Target)))
	case game.FoxBlocked:
		r.privateMsg(ev.FoxID, fmt.Sprintf(resource.TextFoxBlockedMsg, r.playerName(ev.Target)))
	case game.BeaverRestored:
		r.privateMsg(ev.BeaverID, fmt.Sprintf(resource.TextBeaverDoneMsg, r.playerName(ev.Target), ev.Amount))
	case game.BeaverNothingToRestore:
		r.privateMsg(ev.BeaverID, fmt.Sprintf(resource.TextBeaverNoneMsg, r.playerName(ev.Target)))
	case game.BeaverEmpty:
		r.privateMsg(ev.BeaverID, fmt.Sprintf(resource.TextBeaverEmptyMsg, r.playerName(ev.Target)))
	case game.MoleReport:
		if ev.Away {
			r.privateMsg(ev.MoleID, fmt.Sprintf(resource.TextMoleAwayMsg, r.playerName(ev.Target)))
		} else {
			role := ev.Role.String()
			r.privateMsg(ev.MoleID, fmt.Sprintf(
				resource.TextMoleAtHomeMsg,
				r.playerName(ev.Target),
				resource.RoleIcon(role)+" "+resource.RoleName(role),
			))
		}
	case game.MoleEmpty:
		r.privateMsg(ev.MoleID, fmt.Sprintf(resource.TextMoleEmptyMsg, r.playerName(ev.Target)))
	case game.Exiled:
		r.mtx.Lock()
		if r.exiled == nil {
			r.exiled = map[int64]bool{}
		}
		r.exiled[ev.UserID] = true
		r.mtx.Unlock()
		role := ev.Role.String()
		r.groupMsg(fmt.Sprintf(
			resource.TextExiledMsg,
			r.playerName(ev.UserID),
			resource.RoleIcon(role)+" "+resource.RoleName(role),
		))
	case game.NoExile:
		r.groupMsg(resource.TextNoExileMsg)
	case game.GameOver:
		r.mtx.Lock()
		r.winner = ev.Winner
		r.finished = true
		r.mtx.Unlock()
		r.groupMsg(r.renderGameOver(ev))
	default:
		return fmt.Errorf("unknown engine event %T", ev)
	}

	return nil
}

func (r *Session) renderPhase(ev game.PhaseEntered) error {
	cfg := r.Config.GameConfig
	switch ev.Phase {
	case game.PhaseNight:
		r.resetNightDeaths()
		r.groupMsg(fmt.Sprintf(resource.TextNightMsg, ev.Round, formatDuration(cfg.NightDuration)))
		r.groupMsg(resource.RandomNightFlavor())
		util.Sleep(1 * time.Second)
		return r.sendNightMenus(ev.Round)
	case game.PhaseDay:
		if r.quietNight() {
			r.groupMsg(resource.TextQuietNightMsg)
		}
		r.groupMsg(fmt.Sprintf(resource.TextDayMsg, ev.Round, formatDuration(cfg.DayDuration)))
		alive := r.ctrl.Snapshot().AliveCount()
		r.groupMsg(fmt.Sprintf(resource.TextDayAliveMsg, alive, util.Noun(alive, "зверь", "зверя", "зверей")))
	case game.PhaseVoting:
		msg := tgbotapi.NewMessage(r.Config.ChatID, fmt.Sprintf(
			resource.TextVotingMsg, ev.Round, formatDuration(cfg.VotingDuration),
		))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = resource.VoteKeyboard(r.voteTargets())
		r.sndCh <- msg
	}

	return nil
}

func (r *Session) sendRoleCard(ev game.RoleAssigned) error {
	role := ev.Role.String()
	text := fmt.Sprintf(
		resource.TextYourRoleMsg,
		resource.RoleIcon(role),
		resource.RoleName(role),
		resource.RoleDescription(role),
	)

	if ev.Role == game.RoleWolf && len(ev.Wolves) > 1 {
		text += fmt.Sprintf(resource.TextWolfPackMsg, r.renderWolfPack(ev.Wolves, ev.UserID))
	}

	r.privateMsg(ev.UserID, text)
	return nil
}

// sendNightMenus delivers a target keyboard to every living player with a
// night power. Targets come from the engine's legality predicate, the buttons
// never offer an illegal choice.
func (r *Session) sendNightMenus(round int) error {
	snap := r.ctrl.Snapshot()
	g := game.RestoreGame(snap)

	for _, p := range snap.Players {
		if !p.Alive || !p.Role.HasNightAction() {
			continue
		}

		targets := nightTargets(g, p.Role, p.UserID)
		if len(targets) == 0 {
			r.privateMsg(p.UserID, resource.TextNoTargetsMsg)
			continue
		}

		role := p.Role.String()
		msg := tgbotapi.NewMessage(p.UserID, fmt.Sprintf(resource.TextNightActionMsg, resource.RoleIcon(role), round))
		msg.ReplyMarkup = resource.NightKeyboard(targets)
		r.sndCh <- msg
	}

	return nil
}

func (r *Session) sendingWorker(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("match.sendingWorker")
	for {
		select {
		case msg := <-r.sndCh:
			if _, err := r.tg.Send(msg); err != nil {
				logger.Errorf("send tg: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *Session) shutdown(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("match.shutdown")

	if r.ctrl.Phase() == game.PhaseGameOver {
		if err := r.doneFn(r); err != nil {
			logger.Errorf("done function: %v", err)
		}
		logger.Infof("The game session closed, chat: %d, author: %s", r.Config.ChatID, r.Config.AuthorName)
		return
	}

	// the process is going down with a live game, freeze it
	g := errgroup.Group{}
	for _, p := range r.ctrl.Snapshot().Players {
		if !p.Alive {
			continue
		}
		userID := p.UserID
		g.Go(func() error {
			msg := tgbotapi.NewMessage(userID, resource.TextMatchWarnMsg)
			msg.ParseMode = tgbotapi.ModeMarkdown
			if _, err := r.tg.Send(msg); err != nil {
				return fmt.Errorf("send msg: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Errorf("broadcast warn: %v", err)
	}

	if err := r.warnFn(r); err != nil {
		logger.Errorf("warn function: %v", err)
	}
}

func (r *Session) groupMsg(text string) {
	msg := tgbotapi.NewMessage(r.Config.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	r.sndCh <- msg
}

func (r *Session) privateMsg(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	r.sndCh <- msg
}

func (r *Session) playerName(userID int64) string {
	if p, ok := r.ctrl.Snapshot().Player(userID); ok {
		return p.FirstName
	}
	return "?"
}

func (r *Session) markNightDeath() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.nightDeaths++
}

func (r *Session) resetNightDeaths() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.nightDeaths = 0
}

func (r *Session) quietNight() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.nightDeaths == 0
}

func (r *Session) voteTargets() []resource.TargetButton {
	snap := r.ctrl.Snapshot()
	targets := make([]resource.TargetButton, 0, len(snap.Players))
	for _, p := range snap.Players {
		if p.Alive {
			targets = append(targets, resource.TargetButton{ID: p.UserID, Name: p.FirstName})
		}
	}
	return targets
}

func nightTargets(g *game.Game, role game.Role, actorID int64) []resource.TargetButton {
	players := g.LegalTargets(role, actorID)
	targets := make([]resource.TargetButton, 0, len(players))
	for _, p := range players {
		targets = append(targets, resource.TargetButton{ID: p.UserID, Name: p.FirstName})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].ID < targets[j].ID })
	return targets
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%d сек", int(d.Seconds()))
}
