package framer

import "io"

// BestOfTick wraps next with the Allystar best-satellite selector
// (§4.1): when the caller wants only one L6 stream, it buffers frames
// per GPS TOW tick and, at each tick boundary, emits the frame with the
// highest C/No (ties broken by lowest PRN). If pin is non-zero, only
// the pinned PRN's frame is emitted; a tick without it emits nothing.
// At most one frame is emitted per tick.
func BestOfTick(next Func, pin int) Func {
	var (
		currentTOW uint32
		haveTOW    bool
		best       map[int]Frame
		pending    []Frame
		done       bool
	)
	best = make(map[int]Frame)

	flush := func() (Frame, bool) {
		if len(best) == 0 {
			return Frame{}, false
		}
		if pin != 0 {
			f, ok := best[pin]
			best = make(map[int]Frame)
			return f, ok
		}
		var winner Frame
		haveWinner := false
		for prn, f := range best {
			if !haveWinner {
				winner, haveWinner = f, true
				continue
			}
			if f.CNo > winner.CNo || (f.CNo == winner.CNo && prn < winner.PRN) {
				winner = f
			}
		}
		best = make(map[int]Frame)
		return winner, haveWinner
	}

	return func() (Frame, error) {
		for {
			if len(pending) > 0 {
				f := pending[0]
				pending = pending[1:]
				return f, nil
			}
			if done {
				return Frame{}, io.EOF
			}

			f, err := next()
			if err != nil {
				if err == io.EOF {
					done = true
					if w, ok := flush(); ok {
						return w, nil
					}
					return Frame{}, io.EOF
				}
				if _, ok := err.(*FrameError); ok {
					return Frame{}, err
				}
				return Frame{}, err
			}

			if !haveTOW {
				currentTOW = f.TOW
				haveTOW = true
			}
			if f.TOW != currentTOW {
				// Tick boundary: flush the previous tick's winner,
				// then start accumulating the new tick with f.
				w, ok := flush()
				currentTOW = f.TOW
				best[f.PRN] = f
				if ok {
					return w, nil
				}
				continue
			}
			best[f.PRN] = f
		}
	}
}
