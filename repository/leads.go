package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrLeadNotFound 线索不存在
	ErrLeadNotFound = errors.New("线索不存在")
	// ErrDuplicateEmail 联系邮箱在当前归属人下已存在
	ErrDuplicateEmail = errors.New("联系邮箱已存在线索")
)

// LeadRepository 线索数据访问层
type LeadRepository struct {
	coll *mongo.Collection
}

// NewLeadRepository 创建线索仓库
func NewLeadRepository() *LeadRepository {
	return &LeadRepository{coll: Collection(LeadsCollection)}
}

// scopeFilter 按可见范围构造查询条件, 管理员和经理可见全部
func scopeFilter(scope models.OwnerScope) bson.M {
	if scope.All() {
		return bson.M{}
	}
	return bson.M{"userId": scope.UserID}
}

// List 按可见范围查询线索, 更新时间倒序
func (r *LeadRepository) List(ctx context.Context, scope models.OwnerScope) ([]models.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, fmt.Errorf("查询线索列表失败: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("解析线索列表失败: %w", err)
	}

	return leads, nil
}

// FindByID 根据ID查询线索
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrLeadNotFound
	}

	var lead models.Lead
	err = r.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("查询线索失败: %w", err)
	}

	return &lead, nil
}

// FindByEmail 根据归属人和联系邮箱查询线索
func (r *LeadRepository) FindByEmail(ctx context.Context, userID, email string) (*models.Lead, error) {
	var lead models.Lead
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "contactEmail": email}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("查询线索失败: %w", err)
	}

	return &lead, nil
}

// Create 创建线索, 同一归属人下联系邮箱重复时返回ErrDuplicateEmail
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	now := time.Now()
	lead.ID = primitive.NewObjectID()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, lead)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("创建线索失败: %w", err)
	}

	utils.LogDbOperation("insert", LeadsCollection, lead.ID.Hex(), nil)
	return nil
}

// Update 更新线索字段并刷新updatedAt, 返回更新后的文档
func (r *LeadRepository) Update(ctx context.Context, id string, fields bson.M) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrLeadNotFound
	}

	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Lead
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLeadNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("更新线索失败: %w", err)
	}

	utils.LogDbOperation("update", LeadsCollection, id, nil)
	return &updated, nil
}

// UpdateStatus 只更新状态和updatedAt, 手动状态流转使用
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus, now time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrLeadNotFound
	}

	raw, err := ExecuteDbOperation(func() (interface{}, error) {
		return r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
			"$set": bson.M{"status": status, "updatedAt": now},
		})
	}, 3)
	if err != nil {
		return fmt.Errorf("更新线索状态失败: %w", err)
	}
	if raw.(*mongo.UpdateResult).MatchedCount == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// ApplyAdvance 自动推进: 原子地写入新状态, 刷新updatedAt并累加跟进次数
func (r *LeadRepository) ApplyAdvance(ctx context.Context, id string, next models.LeadStatus, now time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrLeadNotFound
	}

	// 推进写入走重试包装, 临时网络抖动不应让该线索等到下一轮
	raw, err := ExecuteDbOperation(func() (interface{}, error) {
		return r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
			"$set": bson.M{"status": next, "updatedAt": now},
			"$inc": bson.M{"followupsSent": 1},
		})
	}, 3)
	if err != nil {
		return fmt.Errorf("推进线索状态失败: %w", err)
	}
	if raw.(*mongo.UpdateResult).MatchedCount == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// Delete 删除线索
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrLeadNotFound
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("删除线索失败: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrLeadNotFound
	}

	utils.LogDbOperation("delete", LeadsCollection, id, nil)
	return nil
}

// Stats 按可见范围统计各状态线索数量
func (r *LeadRepository) Stats(ctx context.Context, scope models.OwnerScope) (*models.LeadStats, error) {
	match := scopeFilter(scope)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("统计线索失败: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.LeadStatus `bson:"_id"`
		Count  int64             `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("解析线索统计失败: %w", err)
	}

	stats := &models.LeadStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.LeadStatusNew:
			stats.New = row.Count
		case models.LeadStatusEmailSent:
			stats.EmailSent = row.Count
		case models.LeadStatusFollowup1:
			stats.Followup1 = row.Count
		case models.LeadStatusFollowup2:
			stats.Followup2 = row.Count
		case models.LeadStatusFollowup3:
			stats.Followup3 = row.Count
		case models.LeadStatusReplied:
			stats.Replied = row.Count
		case models.LeadStatusBooked:
			stats.Booked = row.Count
		case models.LeadStatusConverted:
			stats.Converted = row.Count
		case models.LeadStatusClosed:
			stats.Closed = row.Count
		}
	}

	replied, err := r.coll.CountDocuments(ctx, mergeFilter(match, bson.M{"hasReplies": true}))
	if err != nil {
		return nil, fmt.Errorf("统计已回复线索失败: %w", err)
	}
	stats.HasReplies = replied

	return stats, nil
}

// mergeFilter 合并查询条件
func mergeFilter(base bson.M, extra bson.M) bson.M {
	merged := bson.M{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// Watch 监听线索集合变更, 每次变更触发一次回调, 用于缓存刷新
func (r *LeadRepository) Watch(ctx context.Context, onChange func()) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return fmt.Errorf("监听线索变更失败: %w", err)
	}
	defer stream.Close(ctx)

	utils.Logger.Info().Msg("已开启线索变更监听")

	for stream.Next(ctx) {
		onChange()
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("线索变更流中断: %w", err)
	}

	return nil
}
