package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"thinkbyte/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&UserModel{},
		&SwapRequestModel{},
		&ConversationModel{},
		&MessageModel{},
		&NotificationModel{},
		&RatingModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func upsert(db *gorm.DB, model any) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error
}

// SaveUser inserts or replaces a user record.
func (s *GormStore) SaveUser(u domain.User) error {
	model, err := toUserModel(u)
	if err != nil {
		return err
	}
	if err := upsert(s.db, &model); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// HasUserEmail checks if the email is taken.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	err := s.db.Where("email = ?", email).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	u, err := fromUserModel(model)
	return u, err == nil, err
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var model UserModel
	err := s.db.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user: %w", err)
	}
	u, err := fromUserModel(model)
	return u, err == nil, err
}

// ListUsers returns all users ordered by join time.
func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("joined_at asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(models))
	for _, model := range models {
		u, err := fromUserModel(model)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// UserCount returns the number of users.
func (s *GormStore) UserCount() (int, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return int(count), nil
}

// SaveSwapRequest inserts or replaces a swap request.
func (s *GormStore) SaveSwapRequest(r domain.SwapRequest) error {
	model := SwapRequestModel{
		ID:           r.ID,
		FromUserID:   r.FromUserID,
		ToUserID:     r.ToUserID,
		SkillOffered: r.SkillOffered,
		SkillWanted:  r.SkillWanted,
		Message:      r.Message,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if err := upsert(s.db, &model); err != nil {
		return fmt.Errorf("save swap request: %w", err)
	}
	return nil
}

// GetSwapRequest returns a swap request by ID.
func (s *GormStore) GetSwapRequest(id string) (domain.SwapRequest, bool, error) {
	var model SwapRequestModel
	err := s.db.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SwapRequest{}, false, nil
	}
	if err != nil {
		return domain.SwapRequest{}, false, fmt.Errorf("get swap request: %w", err)
	}
	return fromSwapRequestModel(model), true, nil
}

// ListSwapRequestsForUser returns requests where the user is sender or
// recipient, in insertion order.
func (s *GormStore) ListSwapRequestsForUser(userID string) ([]domain.SwapRequest, error) {
	var models []SwapRequestModel
	err := s.db.
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	requests := make([]domain.SwapRequest, 0, len(models))
	for _, model := range models {
		requests = append(requests, fromSwapRequestModel(model))
	}
	return requests, nil
}

// DeleteSwapRequest removes a swap request; missing IDs are a no-op.
func (s *GormStore) DeleteSwapRequest(id string) error {
	if err := s.db.Delete(&SwapRequestModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete swap request: %w", err)
	}
	return nil
}

// SaveConversation inserts or replaces a conversation.
func (s *GormStore) SaveConversation(c domain.Conversation) error {
	userA, userB := domain.NormalizePair(c.UserA, c.UserB)
	model := ConversationModel{
		ID:            c.ID,
		UserA:         userA,
		UserB:         userB,
		LastMessageID: c.LastMessageID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if err := upsert(s.db, &model); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// GetConversation returns a conversation by ID.
func (s *GormStore) GetConversation(id string) (domain.Conversation, bool, error) {
	var model ConversationModel
	err := s.db.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Conversation{}, false, nil
	}
	if err != nil {
		return domain.Conversation{}, false, fmt.Errorf("get conversation: %w", err)
	}
	return fromConversationModel(model), true, nil
}

// GetConversationByPair returns the conversation for an unordered pair.
func (s *GormStore) GetConversationByPair(userA, userB string) (domain.Conversation, bool, error) {
	a, b := domain.NormalizePair(userA, userB)
	var model ConversationModel
	err := s.db.Where("user_a = ? AND user_b = ?", a, b).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Conversation{}, false, nil
	}
	if err != nil {
		return domain.Conversation{}, false, fmt.Errorf("get conversation by pair: %w", err)
	}
	return fromConversationModel(model), true, nil
}

// ListConversationsForUser returns the user's conversations, most recently
// updated first.
func (s *GormStore) ListConversationsForUser(userID string) ([]domain.Conversation, error) {
	var models []ConversationModel
	err := s.db.
		Where("user_a = ? OR user_b = ?", userID, userID).
		Order("updated_at desc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	conversations := make([]domain.Conversation, 0, len(models))
	for _, model := range models {
		conversations = append(conversations, fromConversationModel(model))
	}
	return conversations, nil
}

// SaveMessage inserts or replaces a message.
func (s *GormStore) SaveMessage(m domain.Message) error {
	model := MessageModel{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Content:        m.Content,
		Type:           string(m.Type),
		IsRead:         m.IsRead,
		Status:         string(m.Status),
		CreatedAt:      m.CreatedAt,
	}
	if err := upsert(s.db, &model); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// GetMessage returns a message by ID.
func (s *GormStore) GetMessage(id string) (domain.Message, bool, error) {
	var model MessageModel
	err := s.db.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Message{}, false, nil
	}
	if err != nil {
		return domain.Message{}, false, fmt.Errorf("get message: %w", err)
	}
	return fromMessageModel(model), true, nil
}

// ListConversationMessages returns a conversation's messages in
// chronological order.
func (s *GormStore) ListConversationMessages(conversationID string) ([]domain.Message, error) {
	var models []MessageModel
	err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	messages := make([]domain.Message, 0, len(models))
	for _, model := range models {
		messages = append(messages, fromMessageModel(model))
	}
	return messages, nil
}

// SaveNotification inserts or replaces a notification.
func (s *GormStore) SaveNotification(n domain.Notification) error {
	model := NotificationModel{
		ID:             n.ID,
		UserID:         n.UserID,
		Category:       string(n.Category),
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		IsRead:         n.IsRead,
		ActionURL:      n.ActionURL,
		ConversationID: n.ConversationID,
		SenderID:       n.SenderID,
		CreatedAt:      n.CreatedAt,
	}
	if err := upsert(s.db, &model); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

// GetNotification returns a notification by ID.
func (s *GormStore) GetNotification(id string) (domain.Notification, bool, error) {
	var model NotificationModel
	err := s.db.Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Notification{}, false, nil
	}
	if err != nil {
		return domain.Notification{}, false, fmt.Errorf("get notification: %w", err)
	}
	return fromNotificationModel(model), true, nil
}

// ListNotificationsForUser returns the user's notifications, newest first.
func (s *GormStore) ListNotificationsForUser(userID string) ([]domain.Notification, error) {
	var models []NotificationModel
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	notifications := make([]domain.Notification, 0, len(models))
	for _, model := range models {
		notifications = append(notifications, fromNotificationModel(model))
	}
	return notifications, nil
}

// SaveRating inserts or replaces a rating.
func (s *GormStore) SaveRating(r domain.Rating) error {
	model := RatingModel{
		ID:            r.ID,
		FromUserID:    r.FromUserID,
		ToUserID:      r.ToUserID,
		SwapRequestID: r.SwapRequestID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
	if err := upsert(s.db, &model); err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}

// GetRatingBySwapRequest returns the rating attached to a swap request.
func (s *GormStore) GetRatingBySwapRequest(swapRequestID string) (domain.Rating, bool, error) {
	var model RatingModel
	err := s.db.Where("swap_request_id = ?", swapRequestID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Rating{}, false, nil
	}
	if err != nil {
		return domain.Rating{}, false, fmt.Errorf("get rating: %w", err)
	}
	return fromRatingModel(model), true, nil
}

// ListRatingsForUser returns ratings addressed to the user, oldest first.
func (s *GormStore) ListRatingsForUser(toUserID string) ([]domain.Rating, error) {
	var models []RatingModel
	err := s.db.
		Where("to_user_id = ?", toUserID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	ratings := make([]domain.Rating, 0, len(models))
	for _, model := range models {
		ratings = append(ratings, fromRatingModel(model))
	}
	return ratings, nil
}

// model conversions

func toUserModel(u domain.User) (UserModel, error) {
	offered, err := marshalList(u.SkillsOffered)
	if err != nil {
		return UserModel{}, err
	}
	wanted, err := marshalList(u.SkillsWanted)
	if err != nil {
		return UserModel{}, err
	}
	availability, err := marshalList(u.Availability)
	if err != nil {
		return UserModel{}, err
	}
	return UserModel{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Location:      u.Location,
		ProfilePhoto:  u.ProfilePhoto,
		IsPublic:      u.IsPublic,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		Availability:  availability,
		Rating:        u.Rating,
		TotalSwaps:    u.TotalSwaps,
		IsAdmin:       u.IsAdmin,
		JoinedAt:      u.JoinedAt,
	}, nil
}

func fromUserModel(m UserModel) (domain.User, error) {
	offered, err := unmarshalList(m.SkillsOffered)
	if err != nil {
		return domain.User{}, err
	}
	wanted, err := unmarshalList(m.SkillsWanted)
	if err != nil {
		return domain.User{}, err
	}
	availability, err := unmarshalList(m.Availability)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Location:      m.Location,
		ProfilePhoto:  m.ProfilePhoto,
		IsPublic:      m.IsPublic,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		Availability:  availability,
		Rating:        m.Rating,
		TotalSwaps:    m.TotalSwaps,
		IsAdmin:       m.IsAdmin,
		JoinedAt:      m.JoinedAt,
	}, nil
}

func fromSwapRequestModel(m SwapRequestModel) domain.SwapRequest {
	return domain.SwapRequest{
		ID:           m.ID,
		FromUserID:   m.FromUserID,
		ToUserID:     m.ToUserID,
		SkillOffered: m.SkillOffered,
		SkillWanted:  m.SkillWanted,
		Message:      m.Message,
		Status:       domain.SwapStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromConversationModel(m ConversationModel) domain.Conversation {
	return domain.Conversation{
		ID:            m.ID,
		UserA:         m.UserA,
		UserB:         m.UserB,
		LastMessageID: m.LastMessageID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromMessageModel(m MessageModel) domain.Message {
	return domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Content:        m.Content,
		Type:           domain.MessageType(m.Type),
		IsRead:         m.IsRead,
		Status:         domain.MessageStatus(m.Status),
		CreatedAt:      m.CreatedAt,
	}
}

func fromNotificationModel(m NotificationModel) domain.Notification {
	return domain.Notification{
		ID:             m.ID,
		UserID:         m.UserID,
		Category:       domain.NotificationCategory(m.Category),
		Type:           domain.NotificationType(m.Type),
		Title:          m.Title,
		Message:        m.Message,
		IsRead:         m.IsRead,
		ActionURL:      m.ActionURL,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		CreatedAt:      m.CreatedAt,
	}
}

func fromRatingModel(m RatingModel) domain.Rating {
	return domain.Rating{
		ID:            m.ID,
		FromUserID:    m.FromUserID,
		ToUserID:      m.ToUserID,
		SwapRequestID: m.SwapRequestID,
		Rating:        m.Rating,
		Comment:       m.Comment,
		CreatedAt:     m.CreatedAt,
	}
}

func marshalList(list []string) (datatypes.JSON, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshal list: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func unmarshalList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	return list, nil
}
