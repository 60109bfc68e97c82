package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Collection is the name of the OTP collection.
const Collection = "otps"

type otpDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SubjectID string             `bson:"subject_id"`
	Purpose   string             `bson:"purpose"`
	CodeHash  string             `bson:"code_hash"`
	Salt      string             `bson:"salt"`
	ExpiresAt time.Time          `bson:"expires_at"`
	Verified  bool               `bson:"verified"`
	Attempts  int                `bson:"attempts"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d otpDocument) toEntity() *entity.OTP {
	return &entity.OTP{
		ID:        d.ID.Hex(),
		SubjectID: d.SubjectID,
		Purpose:   entity.Purpose(d.Purpose),
		CodeHash:  d.CodeHash,
		Salt:      d.Salt,
		ExpiresAt: d.ExpiresAt,
		Verified:  d.Verified,
		Attempts:  d.Attempts,
		CreatedAt: d.CreatedAt,
	}
}

// Mongo stores OTP records in a MongoDB collection. Writes for one subject are
// serialized by the engine lock, so Replace does not need a transaction.
type Mongo struct {
	coll *mongo.Collection
	ins  instrument.Instrumentation
}

func NewMongo(db *mongo.Database, ins instrument.Instrumentation) *Mongo {
	return &Mongo{coll: db.Collection(Collection), ins: ins}
}

// EnsureIndexes creates the lookup index, the TTL index on expires_at and a
// partial unique index that allows one unverified record per subject and purpose.
func (s *Mongo) EnsureIndexes(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "EnsureIndexes")
	defer func() { s.endSpan(span, err) }()

	_, err = s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "purpose", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "purpose", Value: 1}},
			Options: options.Index().
				SetName("otps_one_active").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "verified", Value: false}}),
		},
	})
	return err
}

func (s *Mongo) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}

	return err
}

func (s *Mongo) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.outbound.mongo").Start(ctx, name)
}

func (s *Mongo) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Mongo) findNewest(ctx context.Context, filter bson.D) (*entity.OTP, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc otpDocument
	if err := s.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}

	return doc.toEntity(), nil
}

func (s *Mongo) LatestSince(ctx context.Context, subjectID string, purpose entity.Purpose, since time.Time) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "LatestSince")
	defer func() { s.endSpan(span, err) }()

	return s.findNewest(ctx, bson.D{
		{Key: "subject_id", Value: subjectID},
		{Key: "purpose", Value: purpose.String()},
		{Key: "created_at", Value: bson.D{{Key: "$gt", Value: since}}},
	})
}

func (s *Mongo) FindActive(ctx context.Context, subjectID string, purpose entity.Purpose, now time.Time) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "FindActive")
	defer func() { s.endSpan(span, err) }()

	return s.findNewest(ctx, bson.D{
		{Key: "subject_id", Value: subjectID},
		{Key: "purpose", Value: purpose.String()},
		{Key: "verified", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: now}}},
	})
}

func (s *Mongo) Invalidate(ctx context.Context, subjectID string, purpose entity.Purpose) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "Invalidate")
	defer func() { s.endSpan(span, err) }()

	res, err := s.coll.UpdateMany(ctx,
		bson.D{
			{Key: "subject_id", Value: subjectID},
			{Key: "purpose", Value: purpose.String()},
			{Key: "verified", Value: false},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "verified", Value: true}}}},
	)
	if err != nil {
		return 0, s.mapError(err)
	}

	return res.ModifiedCount, nil
}

func (s *Mongo) Replace(ctx context.Context, otp entity.OTP) (err error) {
	ctx, span := s.startSpan(ctx, "Replace")
	defer func() { s.endSpan(span, err) }()

	if _, err = s.coll.UpdateMany(ctx,
		bson.D{
			{Key: "subject_id", Value: otp.SubjectID},
			{Key: "purpose", Value: otp.Purpose.String()},
			{Key: "verified", Value: false},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "verified", Value: true}}}},
	); err != nil {
		return s.mapError(err)
	}

	_, err = s.coll.InsertOne(ctx, otpDocument{
		SubjectID: otp.SubjectID,
		Purpose:   otp.Purpose.String(),
		CodeHash:  otp.CodeHash,
		Salt:      otp.Salt,
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: otp.CreatedAt,
	})
	return s.mapError(err)
}

// RegisterAttempt uses an aggregation pipeline update so the new attempt
// count and the verified flag are computed in one atomic write.
func (s *Mongo) RegisterAttempt(ctx context.Context, id string, consume bool, maxAttempts int) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "RegisterAttempt")
	defer func() { s.endSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, goerror.ErrNotFound
	}

	next := bson.D{{Key: "$add", Value: bson.A{"$attempts", 1}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "verified", Value: bson.D{{Key: "$or", Value: bson.A{
				consume,
				bson.D{{Key: "$gte", Value: bson.A{next, maxAttempts}}},
			}}}},
			{Key: "attempts", Value: next},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc otpDocument
	if err := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "verified", Value: false}},
		pipeline,
		opts,
	).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}

	return doc.toEntity(), nil
}

func (s *Mongo) PurgeExpired(ctx context.Context, before time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "PurgeExpired")
	defer func() { s.endSpan(span, err) }()

	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: before}}}})
	if err != nil {
		return 0, s.mapError(err)
	}

	return res.DeletedCount, nil
}
