package repositorytest

import (
	"context"
	"errors"
	"sort"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

// Store 内存版 repository.Store，Transaction 失败时回滚到快照。
// 不支持并发访问，调用方需自行串行化。
type Store struct {
	seq       map[model.FundableKind]int64
	Projects  map[int64]model.CharityProjectModel
	Donations map[int64]model.DonationModel
	Users     map[int64]model.UserModel
	SaveErr   error
}

var _ repository.Store = (*Store)(nil)

// NewStore 创建空的内存存储
func NewStore() *Store {
	return &Store{
		seq:       map[model.FundableKind]int64{},
		Projects:  map[int64]model.CharityProjectModel{},
		Donations: map[int64]model.DonationModel{},
		Users:     map[int64]model.UserModel{},
	}
}

// id 每张表独立自增
func (s *Store) id(table model.FundableKind) int64 {
	s.seq[table]++
	return s.seq[table]
}

const usersTable model.FundableKind = "users"

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	projects := copyMap(s.Projects)
	donations := copyMap(s.Donations)
	users := copyMap(s.Users)
	seq := make(map[model.FundableKind]int64, len(s.seq))
	for k, v := range s.seq {
		seq[k] = v
	}

	if err := fn(s); err != nil {
		s.Projects, s.Donations, s.Users, s.seq = projects, donations, users, seq
		return err
	}
	return nil
}

func copyMap[T any](m map[int64]T) map[int64]T {
	out := make(map[int64]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) CreateProject(_ context.Context, p *model.CharityProjectModel) error {
	for _, existing := range s.Projects {
		if existing.Name == p.Name {
			return repository.ErrDuplicate
		}
	}
	p.Id = s.id(model.KindCharityProject)
	s.Projects[p.Id] = *p
	return nil
}

func (s *Store) GetProject(_ context.Context, id int64) (*model.CharityProjectModel, error) {
	p, ok := s.Projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *Store) GetProjectIdByName(_ context.Context, name string) (int64, error) {
	for id, p := range s.Projects {
		if p.Name == name {
			return id, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (s *Store) ListProjects(_ context.Context) ([]model.CharityProjectModel, error) {
	var out []model.CharityProjectModel
	for _, p := range s.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (s *Store) ListOpenProjects(ctx context.Context) ([]*model.CharityProjectModel, error) {
	all, _ := s.ListProjects(ctx)
	var out []*model.CharityProjectModel
	for i := range all {
		if !all[i].FullyInvested {
			out = append(out, &all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreateDate.Before(out[j].CreateDate) })
	return out, nil
}

func (s *Store) ListClosedProjects(ctx context.Context) ([]model.CharityProjectModel, error) {
	all, _ := s.ListProjects(ctx)
	var out []model.CharityProjectModel
	for _, p := range all {
		if p.FullyInvested {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) UpdateProject(_ context.Context, p *model.CharityProjectModel) error {
	for id, existing := range s.Projects {
		if id != p.Id && existing.Name == p.Name {
			return repository.ErrDuplicate
		}
	}
	s.Projects[p.Id] = *p
	return nil
}

func (s *Store) DeleteProject(_ context.Context, p *model.CharityProjectModel) error {
	delete(s.Projects, p.Id)
	return nil
}

func (s *Store) CreateDonation(_ context.Context, d *model.DonationModel) error {
	d.Id = s.id(model.KindDonation)
	s.Donations[d.Id] = *d
	return nil
}

func (s *Store) ListDonations(_ context.Context) ([]model.DonationModel, error) {
	var out []model.DonationModel
	for _, d := range s.Donations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (s *Store) ListDonationsByUser(ctx context.Context, userId int64) ([]model.DonationModel, error) {
	all, _ := s.ListDonations(ctx)
	var out []model.DonationModel
	for _, d := range all {
		if d.UserId == userId {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) ListOpenDonations(ctx context.Context) ([]*model.DonationModel, error) {
	all, _ := s.ListDonations(ctx)
	var out []*model.DonationModel
	for i := range all {
		if !all[i].FullyInvested {
			out = append(out, &all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreateDate.Before(out[j].CreateDate) })
	return out, nil
}

func (s *Store) SaveFundables(_ context.Context, items []model.Fundable) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	for _, item := range items {
		switch v := item.(type) {
		case *model.CharityProjectModel:
			s.Projects[v.Id] = *v
		case *model.DonationModel:
			s.Donations[v.Id] = *v
		default:
			return errors.New("unknown fundable")
		}
	}
	return nil
}

func (s *Store) CreateUser(_ context.Context, u *model.UserModel) error {
	for _, existing := range s.Users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.Id = s.id(usersTable)
	s.Users[u.Id] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id int64) (*model.UserModel, error) {
	u, ok := s.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.UserModel, error) {
	for _, u := range s.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

