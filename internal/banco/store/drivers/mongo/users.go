package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type usersRepo struct {
	coll *mongo.Collection
}

// projection returns the fields to load for proj. Identity fields are
// always included; the arrays and the hash only on request.
func projection(proj store.Projection) bson.M {
	fields := bson.M{"_id": 1, "nombre": 1, "email": 1, "rut": 1, "createdAt": 1}
	if proj.Has(store.ProjectBeneficiaries) {
		fields["destinatarios"] = 1
	}
	if proj.Has(store.ProjectTransfers) {
		fields["transferencia"] = 1
	}
	if proj.Has(store.ProjectCredentials) {
		fields["password"] = 1
	}
	return fields
}

func (r *usersRepo) FindByNationalID(ctx context.Context, rut string, proj store.Projection) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"rut": rut}, options.FindOne().SetProjection(projection(proj))).Decode(&doc)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return toUser(doc, proj), nil
}

func (r *usersRepo) ExistsByNationalID(ctx context.Context, rut string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"rut": rut}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) FindByNationalIDOrEmail(ctx context.Context, rut, email string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{bson.M{"rut": rut}, bson.M{"email": email}}}

	var doc userDoc
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(projection(store.ProjectIdentity))).Decode(&doc)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return toUser(doc, store.ProjectIdentity), nil
}

// AppendBeneficiary pushes only when the owner has no beneficiary with the
// same RUT, so two racing requests cannot both succeed.
func (r *usersRepo) AppendBeneficiary(ctx context.Context, ownerRUT string, b domain.Beneficiary) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{
		"rut":                            ownerRUT,
		"destinatarios.rut_destinatario": bson.M{"$ne": b.NationalID},
	}
	update := bson.M{"$push": bson.M{"destinatarios": fromBeneficiary(b)}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount > 0 {
		return res.ModifiedCount, nil
	}

	// Nothing matched: either no owner or a duplicate.
	n, err := r.coll.CountDocuments(ctx, bson.M{"rut": ownerRUT}, options.Count().SetLimit(1))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, store.ErrDuplicateBeneficiary
	}
	return 0, nil
}

func (r *usersRepo) AppendTransfer(ctx context.Context, ownerRUT string, t domain.Transfer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"rut": ownerRUT},
		bson.M{"$push": bson.M{"transferencia": fromTransfer(t)}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *usersRepo) InsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	// Mongo stores milliseconds.
	u.CreatedAt = u.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := r.coll.InsertOne(ctx, userDoc{
		ID:            u.ID,
		Nombre:        u.Name,
		Email:         u.Email,
		Rut:           u.NationalID,
		Password:      u.PasswordHash,
		Destinatarios: []beneficiaryDoc{},
		Transferencia: []transferDoc{},
		CreatedAt:     u.CreatedAt,
	})
	if err != nil {
		return domain.User{}, mapDuplicate(err)
	}

	u.PasswordHash = ""
	u.Beneficiaries = []domain.Beneficiary{}
	u.Transfers = []domain.Transfer{}
	return u, nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, rut, hash string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"rut": rut},
		bson.M{"$set": bson.M{"password": hash}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// toUser maps a document, turning projected but missing arrays into empty
// lists. Older documents may lack either array.
func toUser(doc userDoc, proj store.Projection) domain.User {
	u := domain.User{
		ID:         doc.ID,
		Name:       doc.Nombre,
		Email:      doc.Email,
		NationalID: doc.Rut,
		CreatedAt:  doc.CreatedAt.UTC(),
	}

	if proj.Has(store.ProjectCredentials) {
		u.PasswordHash = doc.Password
	}
	if proj.Has(store.ProjectBeneficiaries) {
		u.Beneficiaries = make([]domain.Beneficiary, 0, len(doc.Destinatarios))
		for _, b := range doc.Destinatarios {
			u.Beneficiaries = append(u.Beneficiaries, b.domain())
		}
	}
	if proj.Has(store.ProjectTransfers) {
		u.Transfers = make([]domain.Transfer, 0, len(doc.Transferencia))
		for _, t := range doc.Transferencia {
			u.Transfers = append(u.Transfers, t.domain())
		}
		domain.SortNewestFirst(u.Transfers)
	}
	return u
}
