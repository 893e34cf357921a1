package hal

import (
	"bufio"
	"io"
)

// cursorHome moves the terminal cursor to the top-left corner so each frame
// overwrites the previous one.
const cursorHome = "\x1b[H"

// writerConsole renders the cell grid as plain text on an io.Writer.
type writerConsole struct {
	w     *bufio.Writer
	cols  int
	rows  int
	cells []rune
	home  bool
}

// NewWriterConsole returns a Console of cols x rows cells that writes each
// flushed frame to w. With home set, every frame starts with a cursor-home
// escape.
func NewWriterConsole(w io.Writer, cols, rows int, home bool) Console {
	c := &writerConsole{
		w:     bufio.NewWriter(w),
		cols:  cols,
		rows:  rows,
		cells: make([]rune, cols*rows),
		home:  home,
	}
	c.Clear()
	return c
}

func (c *writerConsole) Size() (cols, rows int) { return c.cols, c.rows }
func (c *writerConsole) Levels() int            { return 0 }

func (c *writerConsole) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

func (c *writerConsole) SetCell(col, row int, cell Cell) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell.Rune
}

func (c *writerConsole) Flush() error {
	if c.home {
		c.w.WriteString(cursorHome)
	}
	for row := 0; row < c.rows; row++ {
		for _, r := range c.cells[row*c.cols : (row+1)*c.cols] {
			c.w.WriteRune(r)
		}
		c.w.WriteByte('\n')
	}
	return c.w.Flush()
}
