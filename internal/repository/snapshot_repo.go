package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/model"

	"github.com/bytedance/sonic"
)

// ErrSnapshotNotFound 快照尚未生成
var ErrSnapshotNotFound = errors.New("schedule not generated yet")

type FileSnapshotRepository struct {
	path string
	mu   sync.Mutex // 串行化写入，读不加锁（rename 保证读到的总是完整文件）
}

func NewFileSnapshotRepository(path string) interfaces.SnapshotRepository {
	return &FileSnapshotRepository{path: path}
}

// Save 写临时文件再 rename，读方永远不会看到半个文件
func (r *FileSnapshotRepository) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("快照不能为空")
	}
	if snapshot.Matches == nil {
		snapshot.Matches = []*model.Match{}
	}
	data, err := sonic.ConfigDefault.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化快照失败: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建快照目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// rename 成功后临时文件已不存在，这里的删除只在失败路径上生效
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("刷盘失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("设置快照权限失败: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("替换快照文件失败: %w", err)
	}
	return nil
}

// LoadRaw 原样返回快照字节，接口层直接透传
func (r *FileSnapshotRepository) LoadRaw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("读取快照失败: %w", err)
	}
	return data, nil
}

func (r *FileSnapshotRepository) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := r.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}
	var snapshot model.Snapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("解析快照失败: %w", err)
	}
	return &snapshot, nil
}
