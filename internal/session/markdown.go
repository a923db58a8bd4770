// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"strings"
	"time"
)

// ExportMarkdown renders the transcript as a Markdown document: a metadata
// header followed by the exchanges in order. Empty transcripts export too,
// the document just carries no conversation section entries.
func (s *Session) ExportMarkdown() []byte {
	s.mu.Lock()
	id := s.id
	acct := s.account
	started := s.startedAt
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	s.mu.Unlock()

	var sb strings.Builder

	sb.WriteString("# Chat Transcript\n\n")
	sb.WriteString(fmt.Sprintf("- **Session**: %s\n", id))
	sb.WriteString(fmt.Sprintf("- **User**: %s %s <%s>\n", acct.FirstName, acct.LastName, acct.Email))
	sb.WriteString(fmt.Sprintf("- **Started**: %s\n", started.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- **Exchanges**: %d\n", len(turns)))
	sb.WriteString("\n---\n\n")

	for i, turn := range turns {
		sb.WriteString(fmt.Sprintf("### You <sub>%s</sub>\n\n", turn.At.Format("15:04:05")))
		sb.WriteString(strings.TrimSpace(turn.User))
		sb.WriteString("\n\n")
		sb.WriteString("### Assistant\n\n")
		sb.WriteString(strings.TrimSpace(turn.Reply))
		sb.WriteString("\n\n")
		if i < len(turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported on %s*\n", time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String())
}
