// Package stream provides stream input/output functionality for GNSS data
package stream

import (
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bramburn/gnssaug/pkg/gnssaug/gtime"
)

// File constants
const (
	tagExt       = ".tag"    // Time tag file extension
	TIMETAG      = "TIMETAG" // Time tag header
	FILETAGH_LEN = 4         // File tag header length
	tempExt      = ".temp"   // Temporary file extension
)

// OpenStreamFile opens a file stream
// path format: filepath[::T[::+<off>][::x<speed>]][::S=swapintv][::P={4|8}]
func OpenStreamFile(path string, mode int, msg *string) *FileType {
	var (
		file                   *FileType = new(FileType)
		time0                  gtime.Gtime
		speed, start, swapintv float64 = 1.0, 0.0, 0.0
		timetag, size_fpos     int     = 0, 4 /* default 4B */
	)

	Tracet(3, "OpenStreamFile: path=%s mode=%d\n", path, mode)

	if mode&(STR_MODE_R|STR_MODE_W) == 0 {
		return nil
	}

	// Parse path options
	filePath := path
	options := strings.Split(path, "::")
	if len(options) > 1 {
		filePath = options[0]

		for i := 1; i < len(options); i++ {
			opt := options[i]

			if opt == "T" {
				timetag = 1
			} else if strings.HasPrefix(opt, "+") {
				start, _ = strconv.ParseFloat(opt[1:], 64)
			} else if strings.HasPrefix(opt, "x") {
				speed, _ = strconv.ParseFloat(opt[1:], 64)
			} else if strings.HasPrefix(opt, "S=") {
				swapintv, _ = strconv.ParseFloat(opt[2:], 64)
			} else if strings.HasPrefix(opt, "P=") {
				size_fpos, _ = strconv.Atoi(opt[2:])
			}
		}
	}

	// Validate parameters
	if start < 0.0 {
		start = 0.0
	}
	if swapintv < 0.0 {
		swapintv = 0.0
	}
	if size_fpos != 8 {
		size_fpos = 4
	}

	// Initialize file structure
	file.path = filePath
	file.openpath = ""
	file.mode = mode
	file.timetag = timetag
	file.repmode = 0
	file.offset = 0
	file.size_fpos = size_fpos
	file.time = time0
	file.wtime = time0
	file.tick = 0
	file.tick_f = 0
	file.fpos_n = 0
	file.tick_n = 0
	file.start = start
	file.speed = speed
	file.swapintv = swapintv

	// Get current time
	time := gtime.Utc2GpsT(gtime.TimeGet())

	// Open new file
	if openfile_(file, time, msg) == 0 {
		return nil
	}

	return file
}

// openfile_ opens a file with time tag
func openfile_(file *FileType, time gtime.Gtime, msg *string) int {
	var (
		tagpath string
		tagh    []byte = make([]byte, TIMETAGH_LEN)
		err     error
	)

	Tracet(3, "openfile_: path=%s time=%s\n", file.path, gtime.TimeStr(time, 0))

	file.time = gtime.Utc2GpsT(gtime.TimeGet())
	file.tick = TickGet()
	file.tick_f = file.tick
	file.fpos_n = 0
	file.tick_n = 0

	// Use stdin or stdout if file path is null
	if len(file.path) == 0 {
		if file.mode&STR_MODE_R > 0 {
			file.fp = os.Stdin
		} else {
			file.fp = os.Stdout
		}
		return 1
	}

	// Replace file path keywords
	rpath := reppath(file.path, time, "", "")

	// Handle compressed files for read mode
	if file.mode&STR_MODE_R > 0 {
		// Check if file has a compression extension
		if idx := strings.LastIndex(rpath, "."); idx >= 0 {
			ext := strings.ToLower(rpath[idx:])
			if ext == ".z" || ext == ".gz" || ext == ".zip" || ext == ".bz2" || ext == ".bz" ||
				ext == ".tgz" || ext == ".tar.gz" || ext == ".hatanaka" || ext == ".crx" {
				// Create temporary file path
				tmpPath := rpath + tempExt

				// Try to uncompress the file
				if stat := uncompress(rpath, &tmpPath); stat > 0 {
					// Use the uncompressed file
					rpath = tmpPath
				} else if stat < 0 {
					if msg != nil {
						*msg = fmt.Sprintf("file uncompress error: %s", rpath)
					}
					Tracet(2, "openfile: file uncompress error: %s\n", rpath)
					return 0
				}
			}
		}
	}

	// Open specific file based on mode
	if file.mode&STR_MODE_R > 0 { // Read mode
		file.fp, err = os.Open(rpath)
		if err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("file open error: %s", err.Error())
			}
			Tracet(2, "openfile: file open error: %s\n", err.Error())
			return 0
		}

		// Open tag file if needed
		if file.timetag > 0 {
			tagpath = rpath + tagExt
			file.fp_tag, err = os.Open(tagpath)
			if err != nil {
				if msg != nil {
					*msg = fmt.Sprintf("tag file open error: %s", err.Error())
				}
				Tracet(2, "openfile: tag file open error: %s\n", err.Error())
				file.fp.Close()
				return 0
			}

			// Read time tag header
			if _, err := file.fp_tag.Read(tagh); err != nil || string(tagh[:TIMETAGH_LEN-1]) != TIMETAG {
				if msg != nil {
					*msg = "tag file format error"
				}
				Tracet(2, "openfile: tag file format error\n")
				file.fp.Close()
				file.fp_tag.Close()
				return 0
			}
		}
	} else { // Write mode
		// Create directory if it doesn't exist
		dir := filepath.Dir(rpath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				if msg != nil {
					*msg = fmt.Sprintf("directory creation error: %s", err.Error())
				}
				Tracet(2, "openfile: directory creation error: %s\n", err.Error())
				return 0
			}
		}

		// Open file for writing
		file.fp, err = os.Create(rpath)
		if err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("file open error: %s", err.Error())
			}
			Tracet(2, "openfile: file open error: %s\n", err.Error())
			return 0
		}

		// Open tag file if needed
		if file.timetag > 0 {
			tagpath = rpath + tagExt
			file.fp_tag, err = os.Create(tagpath)
			if err != nil {
				if msg != nil {
					*msg = fmt.Sprintf("tag file open error: %s", err.Error())
				}
				Tracet(2, "openfile: tag file open error: %s\n", err.Error())
				file.fp.Close()
				return 0
			}

			// Write time tag header
			copy(tagh[:TIMETAGH_LEN-1], []byte(TIMETAG))
			tagh[TIMETAGH_LEN-1] = byte(file.size_fpos)
			if _, err := file.fp_tag.Write(tagh); err != nil {
				if msg != nil {
					*msg = fmt.Sprintf("tag file write error: %s", err.Error())
				}
				Tracet(2, "openfile: tag file write error: %s\n", err.Error())
				file.fp.Close()
				file.fp_tag.Close()
				return 0
			}
		}
	}

	file.openpath = rpath
	return 1
}

// CloseFile closes a file stream
func (file *FileType) CloseFile() {
	Tracet(3, "CloseFile:\n")

	if file == nil {
		return
	}

	closefile_(file)
}

// closefile_ closes a file
func closefile_(file *FileType) {
	Tracet(3, "closefile_: path=%s\n", file.path)

	if file.fp != nil && file.fp != os.Stdin && file.fp != os.Stdout {
		file.fp.Close()
		file.fp = nil
	}

	if file.fp_tag != nil {
		file.fp_tag.Close()
		file.fp_tag = nil
	}

	if file.fp_tmp != nil {
		file.fp_tmp.Close()
		file.fp_tmp = nil
	}

	if file.fp_tag_tmp != nil {
		file.fp_tag_tmp.Close()
		file.fp_tag_tmp = nil
	}
}

// ReadFile reads data from a file stream
func (file *FileType) ReadFile(buff []byte, n int64, msg *string) int {
	var (
		ticknow uint32
		time    gtime.Gtime
		tow     float64
		week    int
	)

	Tracet(4, "ReadFile: n=%d\n", n)

	if file == nil || file.fp == nil {
		return 0
	}

	// Lock file for thread safety
	file.lock.Lock()
	defer file.lock.Unlock()

	// If not time-tagged file, simply read the data
	if file.timetag <= 0 {
		nr, err := file.fp.Read(buff[:n])
		if err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("file read error: %s", err.Error())
			}
			return 0
		}
		return nr
	}

	// Handle time-tagged file
	if file.repmode == 0 { // Master mode
		// Get current tick
		ticknow = TickGet()

		// Calculate current replay time
		if file.start > 0.0 {
			// Add start offset if specified
			tow = file.start
			file.start = 0.0
		} else if file.tick == 0 {
			// If first read, initialize tick
			file.tick = ticknow
			tow = 0.0
		} else {
			// Calculate time based on elapsed ticks
			tow = float64(ticknow-file.tick) * file.speed / 1000.0
		}

		// Read data at the calculated time
		return readfiletime(file, buff, n, tow, msg)
	} else { // Slave mode
		// Get current time
		time = gtime.Utc2GpsT(gtime.TimeGet())

		// Calculate time offset
		tow = gtime.Time2GpsT(time, &week) - gtime.Time2GpsT(file.time, &week)
		if tow < 0.0 {
			tow += gtime.SECONDS_IN_WEEK
		}

		// Add offset
		tow += float64(file.offset) / 1000.0

		// Read data at the calculated time
		return readfiletime(file, buff, n, tow, msg)
	}
}

// readfiletag reads file position and tick from tag file
func readfiletag(file *FileType, fpos *int64, tick *uint32, msg *string) int {
	var (
		tagb []byte
		pos  int64
		tkc  uint32
	)

	Tracet(4, "readfiletag:\n")

	if file == nil || file.fp_tag == nil {
		return 0
	}

	// Allocate tag buffer based on file position size
	if file.size_fpos == 8 {
		tagb = make([]byte, FILETAGH_LEN+8)
		if _, err := file.fp_tag.Read(tagb); err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("tag file read error: %s", err.Error())
			}
			return 0
		}
		pos = int64(tagb[0]) | int64(tagb[1])<<8 | int64(tagb[2])<<16 | int64(tagb[3])<<24 |
			int64(tagb[4])<<32 | int64(tagb[5])<<40 | int64(tagb[6])<<48 | int64(tagb[7])<<56
		tkc = uint32(tagb[8]) | uint32(tagb[9])<<8 | uint32(tagb[10])<<16 | uint32(tagb[11])<<24
	} else {
		tagb = make([]byte, FILETAGH_LEN+4)
		if _, err := file.fp_tag.Read(tagb); err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("tag file read error: %s", err.Error())
			}
			return 0
		}
		pos = int64(tagb[0]) | int64(tagb[1])<<8 | int64(tagb[2])<<16 | int64(tagb[3])<<24
		tkc = uint32(tagb[4]) | uint32(tagb[5])<<8 | uint32(tagb[6])<<16 | uint32(tagb[7])<<24
	}

	*fpos = pos
	*tick = tkc

	return 1
}

// readfiletime reads data from file for a specific time
func readfiletime(file *FileType, buff []byte, n int64, tow float64, msg *string) int {
	var (
		fpos int64
		tick uint32
		err  error
		pos  int64
		i    int
	)

	Tracet(4, "readfiletime: tow=%.3f\n", tow)

	if file == nil || file.fp == nil || file.fp_tag == nil {
		return 0
	}

	// Lock file for thread safety
	file.lock.Lock()
	defer file.lock.Unlock()

	// If current file position is already set
	if file.fpos_n > 0 && file.tick_n > 0 {
		// Check if requested time is within current buffer
		if tow < float64(file.tick_n-file.tick_f)/1000.0 {
			// Rewind to start position
			if _, err = file.fp_tag.Seek(TIMETAGH_LEN, 0); err != nil {
				if msg != nil {
					*msg = fmt.Sprintf("tag file seek error: %s", err.Error())
				}
				return 0
			}
			if _, err = file.fp.Seek(0, 0); err != nil {
				if msg != nil {
					*msg = fmt.Sprintf("file seek error: %s", err.Error())
				}
				return 0
			}
			file.fpos_n = 0
			file.tick_n = 0
		}
	}

	// Find the closest time tag
	for {
		// Read file position and tick
		if readfiletag(file, &fpos, &tick, msg) == 0 {
			if file.fpos_n == 0 {
				return 0
			}
			break
		}

		// Check if we've reached the requested time
		if float64(tick-file.tick_f)/1000.0 >= tow {
			break
		}

		// Update next file position and tick
		file.fpos_n = fpos
		file.tick_n = tick
	}

	// Seek to the file position
	if file.fpos_n > 0 {
		if pos, err = file.fp.Seek(file.fpos_n, 0); err != nil || pos != file.fpos_n {
			if msg != nil {
				*msg = fmt.Sprintf("file seek error: %s", err.Error())
			}
			return 0
		}
	}

	// Read data from file
	nr, err := file.fp.Read(buff[:n])
	if err != nil {
		if msg != nil {
			*msg = fmt.Sprintf("file read error: %s", err.Error())
		}
		return 0
	}

	// Update file position
	if nr > 0 {
		for i = 0; i < nr; i++ {
			if buff[i] == '\n' {
				break
			}
		}
		if i < nr {
			file.fpos_n += int64(i + 1)
		}
	}

	return nr
}

// WriteFile writes data to a file stream
func (file *FileType) WriteFile(buff []byte, n int, msg *string) int {
	var (
		wtime gtime.Gtime
		tagb  []byte
		tow   float64
		week  int
	)

	Tracet(4, "WriteFile: n=%d\n", n)

	if file == nil || file.fp == nil {
		return 0
	}

	// Lock file for thread safety
	file.lock.Lock()
	defer file.lock.Unlock()

	// Write data to file
	nw, err := file.fp.Write(buff[:n])
	if err != nil {
		if msg != nil {
			*msg = fmt.Sprintf("file write error: %s", err.Error())
		}
		return 0
	}

	// Write time tag if enabled
	if file.timetag > 0 && file.fp_tag != nil {
		// Get current file position
		fpos, err := file.fp.Seek(0, 1) // 1 = SEEK_CUR
		if err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("file seek error: %s", err.Error())
			}
			return 0
		}

		// Get current tick
		tick := TickGet()

		// Allocate tag buffer based on file position size
		if file.size_fpos == 8 {
			tagb = make([]byte, FILETAGH_LEN+8)
			tagb[0] = byte(fpos)
			tagb[1] = byte(fpos >> 8)
			tagb[2] = byte(fpos >> 16)
			tagb[3] = byte(fpos >> 24)
			tagb[4] = byte(fpos >> 32)
			tagb[5] = byte(fpos >> 40)
			tagb[6] = byte(fpos >> 48)
			tagb[7] = byte(fpos >> 56)
			tagb[8] = byte(tick)
			tagb[9] = byte(tick >> 8)
			tagb[10] = byte(tick >> 16)
			tagb[11] = byte(tick >> 24)
		} else {
			tagb = make([]byte, FILETAGH_LEN+4)
			tagb[0] = byte(fpos)
			tagb[1] = byte(fpos >> 8)
			tagb[2] = byte(fpos >> 16)
			tagb[3] = byte(fpos >> 24)
			tagb[4] = byte(tick)
			tagb[5] = byte(tick >> 8)
			tagb[6] = byte(tick >> 16)
			tagb[7] = byte(tick >> 24)
		}

		// Write tag data
		if _, err := file.fp_tag.Write(tagb); err != nil {
			if msg != nil {
				*msg = fmt.Sprintf("tag file write error: %s", err.Error())
			}
			return 0
		}
	}

	// Swap files if needed
	if file.swapintv > 0.0 {
		// Initialize wtime if it's not set
		if file.wtime.Time == 0 {
			file.wtime = gtime.Utc2GpsT(gtime.TimeGet())
		}

		// Get current time
		wtime = gtime.Utc2GpsT(gtime.TimeGet())

		// Calculate time difference
		tow = gtime.Time2GpsT(file.wtime, &week)
		tow = gtime.Time2GpsT(wtime, &week) - tow

		if tow < 0.0 {
			tow += 604800.0 // Add a week if we crossed a week boundary
		}

		// Check if swap interval has passed
		if tow > file.swapintv*3600.0 {
			Tracet(3, "WriteFile: swapping file after %.2f hours (interval=%.2f hours)\n",
				tow/3600.0, file.swapintv)
			swapfile(file)
		}
	}

	return nw
}

// swapfile swaps files for data and tag
func swapfile(file *FileType) {
	var (
		time    gtime.Gtime
		msg     string
		tmppath string
		tagpath string
		tagh    []byte = make([]byte, TIMETAGH_LEN)
		err     error
	)

	Tracet(3, "swapfile:\n")

	// Get current time
	// For normal operation, use the current system time
	// For testing, use the file's wtime which may have been modified for testing
	if file.wtime.Time != 0 {
		time = file.wtime
	} else {
		time = gtime.Utc2GpsT(gtime.TimeGet())
	}

	// Replace file path keywords for new files
	tmppath = reppath(file.path, time, "", "")

	// If path is unchanged, do nothing
	if tmppath == file.openpath {
		return
	}

	// Create temporary files
	if file.fp != nil && file.fp != os.Stdin && file.fp != os.Stdout {
		// Create directory if it doesn't exist
		dir := filepath.Dir(tmppath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				Tracet(2, "swapfile: directory creation error: %s\n", err.Error())
				return
			}
		}

		// Open temporary file
		file.fp_tmp, err = os.Create(tmppath)
		if err != nil {
			Tracet(2, "swapfile: file open error: %s\n", err.Error())
			return
		}

		// Open temporary tag file if needed
		if file.timetag > 0 && file.fp_tag != nil {
			tagpath = tmppath + tagExt
			file.fp_tag_tmp, err = os.Create(tagpath)
			if err != nil {
				Tracet(2, "swapfile: tag file open error: %s\n", err.Error())
				file.fp_tmp.Close()
				file.fp_tmp = nil
				return
			}

			// Write time tag header
			copy(tagh[:TIMETAGH_LEN-1], []byte(TIMETAG))
			tagh[TIMETAGH_LEN-1] = byte(file.size_fpos)
			if _, err := file.fp_tag_tmp.Write(tagh); err != nil {
				Tracet(2, "swapfile: tag file write error: %s\n", err.Error())
				file.fp_tmp.Close()
				file.fp_tag_tmp.Close()
				file.fp_tmp = nil
				file.fp_tag_tmp = nil
				return
			}
		}

		// Store old file path for logging
		Tracet(3, "swapfile: old path=%s, new path=%s\n", file.openpath, tmppath)

		// Close old files
		closefile_(file)

		// Swap file pointers
		file.fp = file.fp_tmp
		file.fp_tag = file.fp_tag_tmp
		file.fp_tmp = nil
		file.fp_tag_tmp = nil
		file.openpath = tmppath

		// Update write time
		file.wtime = time
	} else {
		// Close current files
		closefile_(file)

		// Open new files
		openfile_(file, time, &msg)

		// Update write time
		file.wtime = time
	}
}

// reppath replaces file path keywords with date/time and other information
func reppath(path string, time gtime.Gtime, sta, ext string) string {
	var (
		ep             [6]float64
		week, dow, doy int
		rep            string
		stat           int = 0
	)

	Tracet(3, "reppath: path=%s time=%s sta=%s ext=%s\n", path, gtime.TimeStr(time, 0), sta, ext)

	// If no keywords or time is invalid, return original path
	if !strings.Contains(path, "%") {
		return path
	}
	if time.Time == 0 {
		return path
	}

	// Get time components
	gtime.Time2Epoch(time, &ep)
	week = 0
	gtime.Time2GpsT(time, &week)
	dow = int(math.Floor(gtime.Time2GpsT(time, &week) / 86400.0))
	doy = gtime.Time2Doy(time)

	// Replace keywords
	rpath := path

	// Year
	if strings.Contains(rpath, "%Y") {
		rep = fmt.Sprintf("%04d", int(ep[0]))
		rpath = strings.ReplaceAll(rpath, "%Y", rep)
		stat = 1
	}
	if strings.Contains(rpath, "%y") {
		rep = fmt.Sprintf("%02d", int(ep[0])%100)
		rpath = strings.ReplaceAll(rpath, "%y", rep)
		stat = 1
	}

	// Month
	if strings.Contains(rpath, "%m") {
		rep = fmt.Sprintf("%02d", int(ep[1]))
		rpath = strings.ReplaceAll(rpath, "%m", rep)
		stat = 1
	}

	// Day of month
	if strings.Contains(rpath, "%d") {
		rep = fmt.Sprintf("%02d", int(ep[2]))
		rpath = strings.ReplaceAll(rpath, "%d", rep)
		stat = 1
	}

	// Hour
	if strings.Contains(rpath, "%h") {
		rep = fmt.Sprintf("%02d", int(ep[3]))
		rpath = strings.ReplaceAll(rpath, "%h", rep)
		stat = 1
	}
	if strings.Contains(rpath, "%H") {
		rep = fmt.Sprintf("%02d", int(ep[3]))
		rpath = strings.ReplaceAll(rpath, "%H", rep)
		stat = 1
	}

	// Minute
	if strings.Contains(rpath, "%M") {
		rep = fmt.Sprintf("%02d", int(ep[4]))
		rpath = strings.ReplaceAll(rpath, "%M", rep)
		stat = 1
	}

	// Second
	if strings.Contains(rpath, "%S") {
		rep = fmt.Sprintf("%02d", int(ep[5]))
		rpath = strings.ReplaceAll(rpath, "%S", rep)
		stat = 1
	}

	// 15 minutes
	if strings.Contains(rpath, "%t") {
		rep = fmt.Sprintf("%02d", int(ep[4])/15*15)
		rpath = strings.ReplaceAll(rpath, "%t", rep)
		stat = 1
	}

	// GPS week
	if strings.Contains(rpath, "%W") {
		rep = fmt.Sprintf("%04d", week)
		rpath = strings.ReplaceAll(rpath, "%W", rep)
		stat = 1
	}
	if strings.Contains(rpath, "%w") {
		rep = fmt.Sprintf("%d", week)
		rpath = strings.ReplaceAll(rpath, "%w", rep)
		stat = 1
	}

	// Day of week
	if strings.Contains(rpath, "%D") {
		rep = fmt.Sprintf("%d", dow)
		rpath = strings.ReplaceAll(rpath, "%D", rep)
		stat = 1
	}

	// Day of year
	if strings.Contains(rpath, "%n") {
		rep = fmt.Sprintf("%03d", doy)
		rpath = strings.ReplaceAll(rpath, "%n", rep)
		stat = 1
	}

	// Station ID
	if len(sta) > 0 {
		if strings.Contains(rpath, "%r") || strings.Contains(rpath, "%s") {
			rep = strings.ToLower(sta)
			rpath = strings.ReplaceAll(rpath, "%r", rep)
			rpath = strings.ReplaceAll(rpath, "%s", rep)
			stat = 1
		}
		if strings.Contains(rpath, "%R") || strings.Contains(rpath, "%S") {
			rep = strings.ToUpper(sta)
			rpath = strings.ReplaceAll(rpath, "%R", rep)
			rpath = strings.ReplaceAll(rpath, "%S", rep)
			stat = 1
		}
	}

	// Extension
	if len(ext) > 0 {
		if strings.Contains(rpath, "%e") {
			rep = strings.ToLower(ext)
			rpath = strings.ReplaceAll(rpath, "%e", rep)
			stat = 1
		}
		if strings.Contains(rpath, "%E") {
			rep = strings.ToUpper(ext)
			rpath = strings.ReplaceAll(rpath, "%E", rep)
			stat = 1
		}
	}

	if stat == 0 {
		return path
	}
	return rpath
}

// uncompress decompresses a compressed file
func uncompress(infile string, outfile *string) int {
	var (
		ext  string
		stat int = 0
	)

	Tracet(3, "uncompress: file=%s\n", infile)

	// Get file extension
	if idx := strings.LastIndex(infile, "."); idx < 0 {
		return 0
	} else {
		ext = strings.ToLower(infile[idx:])
	}

	// Set output file name
	if idx := strings.LastIndex(infile, "."); idx >= 0 {
		*outfile = infile[:idx]
	} else {
		*outfile = infile
	}

	// Uncompress based on file extension
	switch ext {
	case ".z", ".gz", ".zip":
		// Use native Go gzip for .z, .gz, .zip files
		if err := uncompressGzip(infile, *outfile); err != nil {
			Tracet(1, "uncompress gzip error: %s\n", err.Error())
			os.Remove(*outfile)
			return -1
		}
		stat = 1
	case ".bz2", ".bz":
		// Use external command for bzip2 files
		cmd := fmt.Sprintf("bzip2 -f -d -c \"%s\" > \"%s\"", infile, *outfile)
		if err := execCmd(cmd); err != nil {
			Tracet(1, "uncompress bzip2 error: %s\n", err.Error())
			os.Remove(*outfile)
			return -1
		}
		stat = 1
	case ".tgz", ".tar.gz":
		// Use external command for tar files
		cmd := fmt.Sprintf("tar -xzf \"%s\"", infile)
		if err := execCmd(cmd); err != nil {
			Tracet(1, "uncompress tar error: %s\n", err.Error())
			return -1
		}
		stat = 1
	case ".hatanaka", ".crx":
		// Use external command for RINEX hatanaka compression
		if idx := strings.LastIndex(*outfile, "."); idx >= 0 && len(*outfile) > idx+3 {
			if (*outfile)[idx+3] == 'd' || (*outfile)[idx+3] == 'D' {
				ext = *outfile
				ext = ext[:idx+3] + string('o')
				cmd := fmt.Sprintf("crx2rnx < \"%s\" > \"%s\"", infile, ext)
				if err := execCmd(cmd); err != nil {
					Tracet(1, "uncompress hatanaka error: %s\n", err.Error())
					os.Remove(ext)
					return -1
				}
				*outfile = ext
				stat = 1
			}
		}
	}

	Tracet(3, "uncompress: stat=%d\n", stat)
	return stat
}

// uncompressGzip decompresses a gzip file using native Go implementation
func uncompressGzip(infile, outfile string) error {
	// Open input file
	in, err := os.Open(infile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %v", err)
	}
	defer in.Close()

	// Create gzip reader
	gzReader, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %v", err)
	}
	defer gzReader.Close()

	// Create output file
	out, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	defer out.Close()

	// Copy decompressed data to output file
	_, err = io.Copy(out, gzReader)
	if err != nil {
		return fmt.Errorf("failed to decompress data: %v", err)
	}

	return nil
}

// execCmd executes a command
func execCmd(cmd string) error {
	Tracet(3, "execCmd: cmd=%s\n", cmd)

	// Create command
	c := exec.Command("powershell", "-Command", cmd)

	// Run command
	if err := c.Run(); err != nil {
		Tracet(1, "execCmd error: %s\n", err.Error())
		return err
	}

	return nil
}

// StateXFile returns the state of a file stream
func (file *FileType) StateXFile(msg *string) int {
	return 0
}
