package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jaminalder/fitz/internal/domain"
	"github.com/jaminalder/fitz/internal/save"
)

const savePrefix = "save"

// Command is one parsed line of human input: either a move or a request to
// save the game.
type Command struct {
	Move     domain.Move
	SavePath string
}

// IsSave reports whether the command asks for a save.
func (c Command) IsSave() bool { return c.SavePath != "" }

var errBadInput = errors.New("bad input")

// ParseCommand parses "row col rotation" or "save<path>". Anchors must lie in
// the anchor range of b and the rotation must be a multiple of 90 below 360.
func ParseCommand(line string, b *domain.Board) (Command, error) {
	words := strings.Split(line, " ")
	switch len(words) {
	case 1:
		w := words[0]
		if len(w) > len(savePrefix) && strings.HasPrefix(w, savePrefix) {
			return Command{SavePath: w[len(savePrefix):]}, nil
		}
	case 3:
		var nums [3]int
		for i, w := range words {
			if w == "" || strings.Trim(w, "-0123456789") != "" {
				return Command{}, fmt.Errorf("%w: %q", errBadInput, w)
			}
			n, err := strconv.Atoi(w)
			if err != nil {
				return Command{}, fmt.Errorf("%w: %q", errBadInput, w)
			}
			nums[i] = n
		}
		m := domain.Move{
			Anchor:   domain.Anchor{Row: nums[0], Col: nums[1]},
			Rotation: domain.Rotation(nums[2]),
		}
		if m.Row < domain.MinAnchor || m.Row > b.MaxRow() || m.Col < domain.MinAnchor || m.Col > b.MaxCol() || !m.Rotation.Valid() {
			return Command{}, fmt.Errorf("%w: move %v out of range", errBadInput, m)
		}
		return Command{Move: m}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", errBadInput, line)
}

// HumanSource reads moves for human seats from a line-oriented reader. It
// keeps prompting until it reads a legal move, saving the game whenever asked.
type HumanSource struct {
	in     *bufio.Reader
	out    *Printer
	errOut io.Writer
	save   func(path string, s domain.Snapshot) error
}

// NewHumanSource reads from r, prompts through out and reports save failures
// to errOut.
func NewHumanSource(r io.Reader, out *Printer, errOut io.Writer) *HumanSource {
	return &HumanSource{
		in:     bufio.NewReader(r),
		out:    out,
		errOut: errOut,
		save:   save.WriteFile,
	}
}

// NextMove implements domain.MoveSource. End of input while waiting for a
// line is reported as domain.ErrInputExhausted.
func (h *HumanSource) NextMove(g *domain.Game) (domain.Move, error) {
	for {
		h.out.Prompt(g.Turn())
		line, err := h.in.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return domain.Move{}, err
			}
			if line == "" {
				return domain.Move{}, domain.ErrInputExhausted
			}
			h.out.Newline()
		}
		line = strings.TrimSuffix(line, "\n")

		cmd, err := ParseCommand(line, g.Board())
		if err != nil {
			continue
		}
		if cmd.IsSave() {
			if err := h.save(cmd.SavePath, g.Snapshot()); err != nil {
				fmt.Fprint(h.errOut, "Unable to save game")
			}
			continue
		}
		if g.Board().IsLegal(g.Tile(), cmd.Move) {
			return cmd.Move, nil
		}
	}
}
