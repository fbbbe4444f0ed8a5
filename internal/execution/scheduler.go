package execution

// Scheduler splits job indexes into one lane per worker
type Scheduler interface {
	Schedule(jobCount, workerCount int) [][]int
}

// InterleavedScheduler deals jobs to lanes like cards: lane w gets jobs
// w, w+n, w+2n... Every lane starts on one of the first n jobs, so the
// in-order report flush never waits behind a lane busy with late jobs.
type InterleavedScheduler struct{}

// NewInterleavedScheduler creates a new InterleavedScheduler
func NewInterleavedScheduler() *InterleavedScheduler {
	return &InterleavedScheduler{}
}

// Schedule returns at most min(jobCount, workerCount) lanes, each in
// ascending job order. No lane is empty.
func (s *InterleavedScheduler) Schedule(jobCount, workerCount int) [][]int {
	lanes := workerCount
	if lanes > jobCount {
		lanes = jobCount
	}
	if lanes < 1 {
		lanes = 1
	}
	if jobCount <= 0 {
		return nil
	}

	schedule := make([][]int, lanes)
	for lane := range schedule {
		for job := lane; job < jobCount; job += lanes {
			schedule[lane] = append(schedule[lane], job)
		}
	}
	return schedule
}
