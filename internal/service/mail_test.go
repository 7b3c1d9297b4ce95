package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

// fakeMailRepo implements MailRepository for tests.
type fakeMailRepo struct {
	mails   map[uint]domain.Mail
	entries []domain.InboxEntry
	nextID  uint
}

func newFakeMailRepo() *fakeMailRepo {
	return &fakeMailRepo{mails: make(map[uint]domain.Mail)}
}

func (f *fakeMailRepo) Create(ctx context.Context, mail domain.Mail) (domain.Mail, error) {
	f.nextID++
	mail.ID = f.nextID
	f.mails[mail.ID] = mail

	return mail, nil
}

func (f *fakeMailRepo) FindByID(ctx context.Context, id uint) (domain.Mail, error) {
	if m, ok := f.mails[id]; ok {
		return m, nil
	}

	return domain.Mail{}, repository.ErrMailNotFound
}

func (f *fakeMailRepo) Deliver(ctx context.Context, mailID uint, recipientIDs []uint) error {
	for _, id := range recipientIDs {
		f.entries = append(f.entries, domain.InboxEntry{
			ID:          uint(len(f.entries) + 1),
			MailID:      mailID,
			RecipientID: id,
			Mail:        f.mails[mailID],
		})
	}

	return nil
}

func (f *fakeMailRepo) FindInbox(ctx context.Context, recipientID uint) ([]domain.InboxEntry, error) {
	var out []domain.InboxEntry
	for _, e := range f.entries {
		if e.RecipientID == recipientID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (f *fakeMailRepo) FindInboxEntry(ctx context.Context, entryID, recipientID uint) (domain.InboxEntry, error) {
	for _, e := range f.entries {
		if e.ID == entryID && e.RecipientID == recipientID {
			return e, nil
		}
	}

	return domain.InboxEntry{}, repository.ErrMailNotFound
}

func (f *fakeMailRepo) MarkRead(ctx context.Context, entryID, recipientID uint) error {
	for i, e := range f.entries {
		if e.ID == entryID && e.RecipientID == recipientID {
			now := time.Now()
			f.entries[i].ReadAt = &now
			return nil
		}
	}

	return repository.ErrMailNotFound
}

// recordingQueue implements BroadcastQueue for tests.
type recordingQueue struct {
	enqueued   []uint
	enqueueErr error
}

func (q *recordingQueue) EnqueueBroadcast(ctx context.Context, mailID uint) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.enqueued = append(q.enqueued, mailID)

	return nil
}

func TestSendDirect(t *testing.T) {
	repo := newFakeMailRepo()
	svc := NewMailService(repo, &fakeMemberRepo{}, &recordingQueue{})

	mail, err := svc.SendDirect(context.Background(), 1, 2, "Rapat", "Jangan lupa rapat besok.")

	require.NoError(t, err)
	assert.Equal(t, domain.MailScopeDirect, mail.Scope)

	inbox, err := svc.GetInbox(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, mail.ID, inbox[0].MailID)
}

func TestBroadcast_Enqueues(t *testing.T) {
	repo := newFakeMailRepo()
	queue := &recordingQueue{}
	svc := NewMailService(repo, &fakeMemberRepo{}, queue)

	mail, err := svc.Broadcast(context.Background(), 1, "Pengumuman", "Latihan dimulai.", "")

	require.NoError(t, err)
	assert.Equal(t, domain.MailScopeBroadcast, mail.Scope)
	assert.Equal(t, []uint{mail.ID}, queue.enqueued)
	// Fan-out happens in the dispatcher, not inline.
	assert.Empty(t, repo.entries)
}

func TestBroadcast_EnqueueFailureDeliversInline(t *testing.T) {
	repo := newFakeMailRepo()
	members := &fakeMemberRepo{members: map[uint]string{
		1: domain.RoleAnggota,
		2: domain.RolePengurus,
	}}
	queue := &recordingQueue{enqueueErr: errors.New("redis down")}
	svc := NewMailService(repo, members, queue)

	_, err := svc.Broadcast(context.Background(), 9, "Pengumuman", "Latihan dimulai.", "")

	require.NoError(t, err)
	assert.Len(t, repo.entries, 2)
}

func TestDeliverBroadcast_TargetRole(t *testing.T) {
	repo := newFakeMailRepo()
	members := &fakeMemberRepo{members: map[uint]string{
		1: domain.RoleAnggota,
		2: domain.RolePengurus,
		3: domain.RoleAnggota,
	}}
	svc := NewMailService(repo, members, &recordingQueue{})

	mail, err := svc.Broadcast(context.Background(), 9, "Rapat Pengurus", "Ruang B.", domain.RolePengurus)
	require.NoError(t, err)

	require.NoError(t, svc.DeliverBroadcast(context.Background(), mail.ID))

	require.Len(t, repo.entries, 1)
	assert.Equal(t, uint(2), repo.entries[0].RecipientID)
}

func TestDeliverBroadcast_UnknownMail(t *testing.T) {
	svc := NewMailService(newFakeMailRepo(), &fakeMemberRepo{}, &recordingQueue{})

	err := svc.DeliverBroadcast(context.Background(), 404)

	assert.ErrorIs(t, err, ErrMailNotFound)
}

func TestReadEntry_MarksRead(t *testing.T) {
	repo := newFakeMailRepo()
	svc := NewMailService(repo, &fakeMemberRepo{}, &recordingQueue{})

	_, err := svc.SendDirect(context.Background(), 1, 2, "Halo", "Apa kabar?")
	require.NoError(t, err)

	entry, err := svc.ReadEntry(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Nil(t, entry.ReadAt) // snapshot taken before marking

	entry, err = svc.ReadEntry(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, entry.ReadAt)
}

func TestReadEntry_WrongRecipient(t *testing.T) {
	repo := newFakeMailRepo()
	svc := NewMailService(repo, &fakeMemberRepo{}, &recordingQueue{})

	_, err := svc.SendDirect(context.Background(), 1, 2, "Halo", "Apa kabar?")
	require.NoError(t, err)

	_, err = svc.ReadEntry(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrMailNotFound)
}
