// Package diagram draws positions and bitboards as SVG.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/hailam/chesscore/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Theme holds the colors of a diagram.
type Theme struct {
	LightSquare   color.RGBA
	DarkSquare    color.RGBA
	LastMoveColor color.RGBA
	CheckColor    color.RGBA
	MarkColor     color.RGBA
	TextColor     color.RGBA
	WhitePiece    color.RGBA // Raster piece discs
	BlackPiece    color.RGBA
}

// DefaultTheme returns the brown board theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:   color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:    color.RGBA{181, 136, 99, 255},  // Brown
		LastMoveColor: color.RGBA{180, 190, 100, 90},
		CheckColor:    color.RGBA{255, 100, 100, 180},
		MarkColor:     color.RGBA{130, 151, 105, 200},
		TextColor:     color.RGBA{40, 44, 52, 255},
		WhitePiece:    color.RGBA{248, 248, 248, 255},
		BlackPiece:    color.RGBA{32, 32, 32, 255},
	}
}

// Options controls what a diagram shows.
type Options struct {
	SquareSize int
	Theme      *Theme
	Flipped    bool           // Black at the bottom
	LastMove   board.Move     // Origin and target are tinted
	Marks      board.Bitboard // Squares marked with a dot
	Coords     bool
}

func (o *Options) normalize() {
	if o.SquareSize <= 0 {
		o.SquareSize = 45
	}
	if o.Theme == nil {
		o.Theme = DefaultTheme()
	}
}

// glyphs are the Unicode chess symbols indexed by piece.
var glyphs = map[board.Piece]string{
	board.NewPiece(board.Pawn, board.White):   "♙",
	board.NewPiece(board.Knight, board.White): "♘",
	board.NewPiece(board.Bishop, board.White): "♗",
	board.NewPiece(board.Rook, board.White):   "♖",
	board.NewPiece(board.Queen, board.White):  "♕",
	board.NewPiece(board.King, board.White):   "♔",
	board.NewPiece(board.Pawn, board.Black):   "♟",
	board.NewPiece(board.Knight, board.Black): "♞",
	board.NewPiece(board.Bishop, board.Black): "♝",
	board.NewPiece(board.Rook, board.Black):   "♜",
	board.NewPiece(board.Queen, board.Black):  "♛",
	board.NewPiece(board.King, board.Black):   "♚",
}

// Position writes an SVG diagram of pos to w. The king of the side to move is
// tinted when in check.
func Position(w io.Writer, pos *board.Position, opts Options) {
	opts.normalize()
	drawPosition(w, pos, &opts, false)
}

// PNG writes a raster diagram of pos to w. Pieces are drawn as discs marked
// with their letter.
func PNG(w io.Writer, pos *board.Position, opts Options) error {
	opts.normalize()

	var buf bytes.Buffer
	drawPosition(&buf, pos, &opts, true)

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("diagram: parse svg: %w", err)
	}
	side := 8 * opts.SquareSize
	icon.SetTarget(0, 0, float64(side), float64(side))

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	scanner := rasterx.NewScannerGV(side, side, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(side, side, scanner), 1.0)

	drawLetters(img, pos, &opts)
	return png.Encode(w, img)
}

// drawPosition renders pos as SVG. With discs set, pieces become filled
// circles, since the rasterizer does not draw text.
func drawPosition(w io.Writer, pos *board.Position, opts *Options, discs bool) {
	canvas := start(w, opts)
	defer canvas.End()

	canvas.Title(pos.FEN())
	drawSquares(canvas, opts)

	if m := opts.LastMove; m != board.NoMove {
		tint(canvas, opts, m.From(), opts.Theme.LastMoveColor)
		tint(canvas, opts, m.To(), opts.Theme.LastMoveColor)
	}
	if pos.InCheck() {
		tint(canvas, opts, pos.KingSquare(pos.SideToMove()), opts.Theme.CheckColor)
	}

	size := opts.SquareSize
	canvas.Gid("pieces")
	for occ := pos.Occupied(); occ != 0; {
		sq := occ.PopLSB()
		piece := pos.PieceAt(sq)
		x, y := origin(opts, sq)
		if discs {
			canvas.Circle(x+size/2, y+size/2, discRadius(size), style(pieceColor(opts.Theme, piece.Color())))
			continue
		}
		canvas.Text(x+size/2, y+size*4/5, glyphs[piece],
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", size*4/5, hex(opts.Theme.TextColor)))
	}
	canvas.Gend()

	drawMarks(canvas, opts)
	drawCoords(canvas, opts)
}

func discRadius(size int) int {
	return size * 2 / 5
}

func pieceColor(t *Theme, c board.Color) color.RGBA {
	if c == board.White {
		return t.WhitePiece
	}
	return t.BlackPiece
}

// drawLetters stamps the uppercase piece letter on every disc, in the other
// side's disc color.
func drawLetters(img *image.RGBA, pos *board.Position, opts *Options) {
	d := &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	half := opts.SquareSize / 2

	for occ := pos.Occupied(); occ != 0; {
		sq := occ.PopLSB()
		piece := pos.PieceAt(sq)
		x, y := origin(opts, sq)

		d.Src = image.NewUniform(pieceColor(opts.Theme, piece.Color().Other()))
		d.Dot = fixed.P(x+half-3, y+half+5)
		d.DrawString(strings.ToUpper(piece.String()))
	}
}

// Bitboard writes an SVG diagram with a dot on every set square of bb.
func Bitboard(w io.Writer, bb board.Bitboard, opts Options) {
	opts.normalize()
	opts.Marks |= bb
	canvas := start(w, &opts)
	defer canvas.End()

	canvas.Title(fmt.Sprintf("0x%016x", uint64(bb)))
	drawSquares(canvas, &opts)
	drawMarks(canvas, &opts)
	drawCoords(canvas, &opts)
}

func start(w io.Writer, opts *Options) *svg.SVG {
	canvas := svg.New(w)
	side := 8 * opts.SquareSize
	canvas.Start(side, side)
	return canvas
}

// origin returns the top left corner of sq.
func origin(opts *Options, sq board.Square) (int, int) {
	col, row := int(sq.File()), 7-int(sq.Rank())
	if opts.Flipped {
		col, row = 7-col, 7-row
	}
	return col * opts.SquareSize, row * opts.SquareSize
}

func drawSquares(canvas *svg.SVG, opts *Options) {
	canvas.Gid("board")
	for sq := board.Square(0); sq < 64; sq++ {
		fill := opts.Theme.DarkSquare
		if (int(sq.File())+int(sq.Rank()))%2 == 1 {
			fill = opts.Theme.LightSquare
		}
		x, y := origin(opts, sq)
		canvas.Rect(x, y, opts.SquareSize, opts.SquareSize, style(fill))
	}
	canvas.Gend()
}

func tint(canvas *svg.SVG, opts *Options, sq board.Square, c color.RGBA) {
	x, y := origin(opts, sq)
	canvas.Rect(x, y, opts.SquareSize, opts.SquareSize, style(c))
}

func drawMarks(canvas *svg.SVG, opts *Options) {
	if opts.Marks == 0 {
		return
	}
	size := opts.SquareSize
	canvas.Gid("marks")
	for bb := opts.Marks; bb != 0; {
		x, y := origin(opts, bb.PopLSB())
		canvas.Circle(x+size/2, y+size/2, size/6, style(opts.Theme.MarkColor))
	}
	canvas.Gend()
}

func drawCoords(canvas *svg.SVG, opts *Options) {
	if !opts.Coords {
		return
	}
	size := opts.SquareSize
	font := fmt.Sprintf("font-size:%dpx;fill:%s", size/4, hex(opts.Theme.TextColor))

	canvas.Gid("coords")
	for i := 0; i < 8; i++ {
		// Files along the bottom edge, ranks along the left edge
		file := board.NewSquare(board.File(i), board.Rank1)
		rank := board.NewSquare(board.FileA, board.Rank(i))
		if opts.Flipped {
			file = board.NewSquare(board.File(i), board.Rank8)
			rank = board.NewSquare(board.FileH, board.Rank(i))
		}
		x, y := origin(opts, file)
		canvas.Text(x+size-size/4, y+size-2, file.File().String(), font)
		x, y = origin(opts, rank)
		canvas.Text(x+2, y+size/4, rank.Rank().String(), font)
	}
	canvas.Gend()
}

func style(c color.RGBA) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.2f", hex(c), float64(c.A)/255)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
