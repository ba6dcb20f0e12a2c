package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to ItemDesk CLI (type 'help' for commands)")

	// Pick up a session persisted by a previous run. A token the backend
	// rejects is cleared; an unreachable backend just leaves us logged out
	// for now.
	if err := a.session.Restore(ctx); err != nil {
		log.Printf("Session restore failed: %s", err.Error())
	} else if u := a.session.User(); u != nil {
		log.Printf("Welcome back, %s", u.Email)
	}

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
