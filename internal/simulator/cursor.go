package simulator

import (
	"strings"
	"time"

	"armsim/pkg/domain"
	"armsim/pkg/serrors"
	"armsim/pkg/storage"

	"github.com/google/uuid"
)

// cursorSep joins the creation time and id of a page cursor.
const cursorSep = "_"

// formatCursor renders c as "<RFC3339Nano created_at>_<id>". A nil cursor
// yields "".
func formatCursor(c *storage.Cursor) string {
	if c == nil {
		return ""
	}

	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + c.ID.String()
}

func parseCursor(s string) (*storage.Cursor, error) {
	if s == "" {
		return nil, nil
	}

	at, id, ok := strings.Cut(s, cursorSep)
	if !ok {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid cursor")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}

	return &storage.Cursor{CreatedAt: createdAt, ID: domain.SimulationID(parsed)}, nil
}
