package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/render"
	"github.com/lgbarn/chessrules-go/internal/store"
)

// session is one game at the terminal.
type session struct {
	cfg     *config.Config
	game    *engine.Game
	start   string
	id      string
	created time.Time
	st      *store.Store // nil when the game is not persisted
	in      *bufio.Scanner
	out     io.Writer
}

// newSession starts a game from position (the standard one when empty) or,
// with resumeID set, reloads a stored game from st.
func newSession(cfg *config.Config, st *store.Store, resumeID, position string, in io.Reader, out io.Writer) (*session, error) {
	s := &session{
		cfg:   cfg,
		st:    st,
		start: position,
		in:    bufio.NewScanner(in),
		out:   out,
	}

	if resumeID != "" {
		if st == nil {
			return nil, fmt.Errorf("resume %s: no store open", resumeID)
		}
		rec, err := st.Load(resumeID)
		if err != nil {
			return nil, err
		}
		if s.game, err = store.Replay(rec); err != nil {
			return nil, err
		}
		s.id, s.start, s.created = rec.ID, rec.Start, rec.Created
		cfg.Logf(1, "resumed game %s at ply %d", s.id, s.game.Ply())
		return s, nil
	}

	if s.start == "" {
		s.start = chess.InitialPosition
	}
	g, err := engine.NewGameFromPosition(s.start)
	if err != nil {
		return nil, err
	}
	s.game = g
	if st != nil {
		s.id = store.NewID()
		if err := s.save(); err != nil {
			return nil, err
		}
		cfg.Logf(1, "new game %s", s.id)
	}
	return s, nil
}

// run is the prompt loop. It returns at end of input, on "q", or once the
// game is over.
func (s *session) run() error {
	if err := s.show(); err != nil {
		return err
	}
	if s.game.Status().IsOver() {
		fmt.Fprintln(s.out, render.Rejection(fmt.Errorf("no moves accepted: %w", errors.ErrGameOver)))
		return nil
	}

	for !s.game.Status().IsOver() {
		text, ok := s.prompt(fmt.Sprintf("%s, select a piece (e.g. e2) or castle (O-O, O-O-O), q to quit: ", s.game.Turn()))
		if !ok {
			return s.in.Err()
		}
		switch strings.ToLower(text) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}

		m, err := s.readMove(text)
		if err != nil {
			fmt.Fprintln(s.out, render.Rejection(err))
			continue
		}
		if m.Kind == chess.MoveNone {
			continue
		}
		if err := s.play(m); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "The game is over.")
	return nil
}

// readMove turns the first answer into a move. Castling text is a move on
// its own; a square shows that piece's moves and asks for a destination.
// An empty destination cancels the selection.
func (s *session) readMove(text string) (chess.Move, error) {
	if strings.HasPrefix(strings.ToUpper(strings.ReplaceAll(text, "0", "O")), "O-O") {
		return chess.ParseMove(text)
	}

	from, err := chess.ParseSquare(text)
	if err != nil {
		return chess.Move{}, err
	}
	mb, castles, err := s.game.PossibleMoves(from, false)
	if err != nil {
		return chess.Move{}, err
	}
	if err := render.Moves(s.out, &mb, castles, s.game.Turn(), s.cfg.Display); err != nil {
		return chess.Move{}, err
	}

	dest, ok := s.prompt("Move to (empty to cancel): ")
	if !ok || dest == "" {
		return chess.Move{}, nil
	}
	return chess.ParseDestination(from, dest)
}

// play attempts m and, if accepted, stores the game and redraws it.
func (s *session) play(m chess.Move) error {
	board := s.game.Board()
	fmt.Fprintln(s.out, render.Attempt(&board, s.game.Turn(), m, s.cfg.Display.Glyphs))

	if err := s.game.TryMove(m); err != nil {
		fmt.Fprintln(s.out, render.Rejection(err))
		s.cfg.Logf(2, "rejected %s: %v", m, err)
		return nil
	}
	s.cfg.Logf(2, "ply %d: %s", s.game.Ply(), m)

	if s.st != nil {
		if err := s.save(); err != nil {
			return err
		}
	}
	return s.show()
}

func (s *session) show() error {
	board := s.game.Board()
	if err := render.Board(s.out, &board, s.game.Turn(), s.cfg.Display); err != nil {
		return err
	}
	return render.Status(s.out, s.game, s.cfg.Display.Glyphs)
}

func (s *session) save() error {
	rec := store.RecordFromGame(s.id, s.start, s.game)
	rec.Created = s.created
	if err := s.st.Save(rec); err != nil {
		return err
	}
	s.created = rec.Created
	return nil
}

// prompt writes question and reads one trimmed line. It reports false at
// end of input.
func (s *session) prompt(question string) (string, bool) {
	fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
