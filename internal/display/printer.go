// Package display renders messages from the server for a person to read.
package display

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/horgh/catchat/internal/message"
	"github.com/horgh/catchat/internal/queue"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// Printer writes one line per message.
type Printer struct {
	Out io.Writer

	// Raw means print messages as they were on the wire.
	Raw bool

	// Our nick. Lines mentioning it stand out.
	Nick string

	renderer *lipgloss.Renderer
	styles   styles
}

type styles struct {
	channel lipgloss.Style
	nick    lipgloss.Style
	self    lipgloss.Style
	server  lipgloss.Style
	notice  lipgloss.Style
	event   lipgloss.Style
	error   lipgloss.Style
	fatal   lipgloss.Style
}

// NewPrinter creates a Printer writing to out. Colours are used only if out is
// a terminal that supports them.
func NewPrinter(out io.Writer, nick string, raw bool) *Printer {
	p := &Printer{
		Out:      out,
		Raw:      raw,
		Nick:     nick,
		renderer: lipgloss.NewRenderer(out),
	}
	p.setStyles()
	return p
}

// SetColorProfile overrides what the terminal was detected to support.
func (p *Printer) SetColorProfile(profile termenv.Profile) {
	p.renderer.SetColorProfile(profile)
	p.setStyles()
}

func (p *Printer) setStyles() {
	r := p.renderer
	p.styles = styles{
		channel: r.NewStyle().Foreground(lipgloss.Color("39")),
		nick:    r.NewStyle().Bold(true),
		self:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		server:  r.NewStyle().Foreground(lipgloss.Color("245")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("214")),
		event:   r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		error:   r.NewStyle().Foreground(lipgloss.Color("196")),
		fatal:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// Run prints messages from q until q is closed or ctx is done.
//
// When Run returns nothing more will be taken from q.
func (p *Printer) Run(ctx context.Context, q *queue.Queue[message.Message]) error {
	defer q.CloseReceive()

	for {
		m, err := q.Receive(ctx)
		if err != nil {
			if err == queue.ErrClosed {
				return nil
			}
			return err
		}

		line := p.Format(m)
		if line == "" {
			continue
		}

		if _, err := fmt.Fprintln(p.Out, line); err != nil {
			return errors.Wrap(err, "error writing message")
		}
	}
}

// Format returns the line to print for a message. It returns a blank string
// if the message is not worth showing.
func (p *Printer) Format(m message.Message) string {
	if p.Raw {
		return m.String()
	}

	switch m.Command().Kind() {
	case message.KindPrivMsg:
		return p.formatPrivMsg(m)
	case message.KindNotice:
		return p.formatNotice(m)
	case message.KindNumeric:
		return p.formatNumeric(m)
	case message.KindJoin:
		channel, _ := m.Param(0)
		return p.styles.event.Render(fmt.Sprintf("*** %s joined %s",
			m.SourceNick(), channel))
	case message.KindNick:
		nick, _ := m.Param(0)
		return p.styles.event.Render(fmt.Sprintf("*** %s is now known as %s",
			m.SourceNick(), nick))
	case message.KindError:
		text, _ := m.Param(0)
		return p.styles.error.Render("ERROR " + text)
	case message.KindPing, message.KindPong, message.KindCap:
		return ""
	default:
		return m.String()
	}
}

func (p *Printer) formatPrivMsg(m message.Message) string {
	target, _ := m.Param(0)
	text, _ := m.Param(1)
	nick := p.renderNick(m.SourceNick())

	action, isAction := ctcpAction(text)

	if !isChannel(target) {
		if isAction {
			return fmt.Sprintf("* %s %s", nick, action)
		}
		return fmt.Sprintf("*%s* %s", nick, text)
	}

	channel := p.styles.channel.Render("[" + target + "]")
	if isAction {
		return fmt.Sprintf("%s * %s %s", channel, nick, action)
	}
	return fmt.Sprintf("%s <%s> %s", channel, nick, text)
}

func (p *Printer) formatNotice(m message.Message) string {
	text, _ := m.Param(m.NumParams() - 1)
	from := m.SourceNick()
	if from == "" {
		from = "*"
	}
	return p.styles.notice.Render(fmt.Sprintf("-%s- %s", from, text))
}

// Numerics carry our nick first. Show the name and the rest.
func (p *Printer) formatNumeric(m message.Message) string {
	params := m.Params()
	if len(params) > 0 {
		params = params[1:]
	}

	if len(params) == 0 {
		return p.styles.server.Render(m.Command().Name())
	}
	return p.styles.server.Render(m.Command().Name() + " " +
		strings.Join(params, " "))
}

func (p *Printer) renderNick(nick string) string {
	if p.Nick != "" && strings.EqualFold(nick, p.Nick) {
		return p.styles.self.Render(nick)
	}
	return p.styles.nick.Render(nick)
}

// Fatal prints why we had to stop.
func (p *Printer) Fatal(err error) {
	_, _ = fmt.Fprintln(p.Out, p.styles.fatal.Render("*** Disconnected: "+
		err.Error()))
}

func isChannel(target string) bool {
	return strings.HasPrefix(target, "#") || strings.HasPrefix(target, "&")
}

// ctcpAction extracts the text of a CTCP ACTION (/me).
func ctcpAction(text string) (string, bool) {
	const prefix = "\x01ACTION "
	if !strings.HasPrefix(text, prefix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(text, prefix), "\x01"), true
}
