package model

import "fmt"

// Queue is the ordered list of trim tasks the user builds up.
// It is not safe for concurrent use: only the UI goroutine mutates it and the
// processor works on a snapshot returned by Tasks.
type Queue struct {
	tasks []TrimTask
}

// NewQueue creates a queue seeded with tasks
func NewQueue(tasks ...TrimTask) *Queue {
	q := &Queue{}
	for _, t := range tasks {
		q.Append(t)
	}
	return q
}

// Append adds a task to the end of the queue
func (q *Queue) Append(task TrimTask) {
	if task.ID == "" {
		task.ID = generateID(TrimTaskIDPrefix)
	}
	q.tasks = append(q.tasks, task)
}

// Remove deletes the task at index
func (q *Queue) Remove(index int) error {
	if err := q.checkIndex(index); err != nil {
		return err
	}
	q.tasks = append(q.tasks[:index], q.tasks[index+1:]...)
	return nil
}

// MoveUp swaps the task at index with its predecessor and returns the new index.
// The first task stays in place.
func (q *Queue) MoveUp(index int) (int, error) {
	if err := q.checkIndex(index); err != nil {
		return index, err
	}
	if index == 0 {
		return index, nil
	}
	q.tasks[index-1], q.tasks[index] = q.tasks[index], q.tasks[index-1]
	return index - 1, nil
}

// MoveDown swaps the task at index with its successor and returns the new index.
// The last task stays in place.
func (q *Queue) MoveDown(index int) (int, error) {
	if err := q.checkIndex(index); err != nil {
		return index, err
	}
	if index >= len(q.tasks)-1 {
		return index, nil
	}
	q.tasks[index], q.tasks[index+1] = q.tasks[index+1], q.tasks[index]
	return index + 1, nil
}

// At returns the task at index
func (q *Queue) At(index int) (TrimTask, bool) {
	if index < 0 || index >= len(q.tasks) {
		return TrimTask{}, false
	}
	return q.tasks[index], true
}

// Len returns the number of queued tasks
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Tasks returns a copy of the queued tasks in order
func (q *Queue) Tasks() []TrimTask {
	out := make([]TrimTask, len(q.tasks))
	copy(out, q.tasks)
	return out
}

// Clear removes every task
func (q *Queue) Clear() {
	q.tasks = nil
}

func (q *Queue) checkIndex(index int) error {
	if index < 0 || index >= len(q.tasks) {
		return fmt.Errorf("queue index %d out of range [0,%d)", index, len(q.tasks))
	}
	return nil
}
