package csv

import (
	"bufio"
	"io"

	"hermannm.dev/wrap"
)

var delimitersToCheck = []rune{',', ';', '\t', '|'}

// DeduceFieldDelimiter reads up to maxRowsToCheck lines of the file to find
// the most likely field delimiter: the candidate whose per-line count is
// highest while staying consistent from line to line. Falls back to ',' when
// no candidate stands out.
func DeduceFieldDelimiter(csvFile io.ReadSeeker, maxRowsToCheck int) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read
	// subsequently.
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV file after deducing field delimiter")
		}
	}()

	type candidate struct {
		delimiter rune
		minCount  int
		maxCount  int
	}

	candidates := make([]candidate, 0, len(delimitersToCheck))
	for _, delimiter := range delimitersToCheck {
		candidates = append(candidates, candidate{delimiter: delimiter, minCount: -1, maxCount: -1})
	}

	scanner := bufio.NewScanner(csvFile)
	for i := 0; scanner.Scan() && i < maxRowsToCheck; i++ {
		line := scanner.Text()

		for j := range candidates {
			count := 0
			for _, char := range line {
				if char == candidates[j].delimiter {
					count++
				}
			}

			if candidates[j].minCount == -1 || count < candidates[j].minCount {
				candidates[j].minCount = count
			}
			if candidates[j].maxCount == -1 || count > candidates[j].maxCount {
				candidates[j].maxCount = count
			}
		}
	}

	// A delimiter appearing the same number of times on every line is more
	// likely the field separator than one with varying counts (which suggests
	// occurrences inside quoted values).
	consistent := func(cand candidate) bool { return cand.minCount == cand.maxCount }

	best := candidate{delimiter: ','}
	for _, cand := range candidates {
		if cand.maxCount <= 0 {
			continue
		}

		switch {
		case consistent(cand) && !consistent(best):
			best = cand
		case consistent(cand) == consistent(best) && cand.maxCount > best.maxCount:
			best = cand
		}
	}

	return best.delimiter, nil
}
