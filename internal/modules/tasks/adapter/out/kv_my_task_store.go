package out

import (
	"context"

	"cutrack/internal/modules/tasks/domain"
	tasksout "cutrack/internal/modules/tasks/port/out"
	"cutrack/internal/platform/kv"
)

const MyTasksKey = "myTasks"

type KVMyTaskStore struct {
	store kv.Store
}

func NewKVMyTaskStore(store kv.Store) tasksout.MyTaskStore {
	return &KVMyTaskStore{store: store}
}

func (s *KVMyTaskStore) Load(ctx context.Context) ([]domain.MyTask, error) {
	var tasks []domain.MyTask
	if _, err := s.store.Get(ctx, MyTasksKey, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *KVMyTaskStore) Save(ctx context.Context, tasks []domain.MyTask) error {
	if tasks == nil {
		tasks = []domain.MyTask{}
	}
	return s.store.Set(ctx, MyTasksKey, tasks)
}
