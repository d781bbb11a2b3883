package dao

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

const (
	KEYSIZE = 32

	ChannelStatusActive   = "ACTIVE"
	ChannelStatusInactive = "INACTIVE"
)

// Channel 渠道配置模型
type Channel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;comment:'渠道ID'"`
	Vendor     string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:idx_vendor_capability;comment:'供应商, jdcloud, aliyun'"`
	Capability string `gorm:"type:VARCHAR(16);NOT NULL;uniqueIndex:idx_vendor_capability;comment:'能力, sms, email, payment, im'"`

	Endpoint          string `gorm:"type:VARCHAR(255);comment:'API入口地址，可以包含占位符'"`
	AppID             string `gorm:"type:VARCHAR(128);comment:'应用ID或账号ID'"`
	AccessKeyID       string `gorm:"type:VARCHAR(255);comment:'API密钥，明文'"`
	Secret            string `gorm:"type:VARCHAR(512);comment:'API密钥,加密'"`
	Region            string `gorm:"type:VARCHAR(64)"`
	SignName          string `gorm:"type:VARCHAR(128);comment:'短信签名或发件人'"`
	DefaultTemplateID string `gorm:"type:VARCHAR(128)"`
	Extra             string `gorm:"type:TEXT;comment:'扩展配置，JSON'"`

	Status string `gorm:"type:ENUM('ACTIVE','INACTIVE');NOT NULL;DEFAULT:'ACTIVE';comment:'状态，启用-ACTIVE，禁用-INACTIVE'"`
	Ctime  int64
	Utime  int64
}

// TableName 重命名表
func (Channel) TableName() string {
	return "channels"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Channel{})
}

type ChannelDAO interface {
	// Create 创建渠道
	Create(ctx context.Context, channel Channel) (Channel, error)
	// Update 更新渠道
	Update(ctx context.Context, channel Channel) error
	// FindActive 查找所有启用的渠道
	FindActive(ctx context.Context) ([]Channel, error)
}

type channelDAO struct {
	db         *egorm.Component
	encryptKey []byte
}

func NewChannelDAO(db *egorm.Component, encryptKey string) ChannelDAO {
	// 确保加密密钥长度为32字节
	key := make([]byte, KEYSIZE)
	copy(key, encryptKey)
	return &channelDAO{
		db:         db,
		encryptKey: key,
	}
}

// encrypt 使用AES-GCM加密
func (d *channelDAO) encrypt(plaintext string) (string, error) {
	gcm, err := d.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt 使用AES-GCM解密
func (d *channelDAO) decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	gcm, err := d.gcm()
	if err != nil {
		return "", err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return "", errors.New("ciphertext太短了")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertext = ciphertext[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (d *channelDAO) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(d.encryptKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Create 创建渠道
func (d *channelDAO) Create(ctx context.Context, channel Channel) (Channel, error) {
	now := time.Now().UnixMilli()
	channel.Ctime = now
	channel.Utime = now
	if channel.Status == "" {
		channel.Status = ChannelStatusActive
	}

	secret := channel.Secret
	encryptedSecret, err := d.encrypt(secret)
	if err != nil {
		return Channel{}, errors.Wrap(err, "加密渠道密钥失败")
	}
	channel.Secret = encryptedSecret

	if err := d.db.WithContext(ctx).Create(&channel).Error; err != nil {
		if d.isUniqueConstraintError(err) {
			return Channel{}, fmt.Errorf("%w: %s-%s", errs.ErrChannelDuplicate, channel.Vendor, channel.Capability)
		}
		return Channel{}, err
	}

	channel.Secret = secret
	return channel, nil
}

// Update 更新渠道，Secret 为空时不修改
func (d *channelDAO) Update(ctx context.Context, channel Channel) error {
	updates := map[string]any{
		"endpoint":            channel.Endpoint,
		"app_id":              channel.AppID,
		"access_key_id":       channel.AccessKeyID,
		"region":              channel.Region,
		"sign_name":           channel.SignName,
		"default_template_id": channel.DefaultTemplateID,
		"extra":               channel.Extra,
		"status":              channel.Status,
		"utime":               time.Now().UnixMilli(),
	}

	if channel.Secret != "" {
		encryptedSecret, err := d.encrypt(channel.Secret)
		if err != nil {
			return err
		}
		updates["secret"] = encryptedSecret
	}

	return d.db.WithContext(ctx).Model(&Channel{}).
		Where("vendor = ? AND capability = ?", channel.Vendor, channel.Capability).
		Updates(updates).Error
}

// FindActive 查找所有启用的渠道
func (d *channelDAO) FindActive(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	err := d.db.WithContext(ctx).Where("status = ?", ChannelStatusActive).Find(&channels).Error
	if err != nil {
		return nil, err
	}

	for i := range channels {
		if channels[i].Secret == "" {
			continue
		}
		secret, err := d.decrypt(channels[i].Secret)
		if err != nil {
			return nil, errors.Wrapf(err, "解密渠道 %s-%s 的密钥失败", channels[i].Vendor, channels[i].Capability)
		}
		channels[i].Secret = secret
	}
	return channels, nil
}

// isUniqueConstraintError 同一供应商同一能力只能有一个渠道
func (d *channelDAO) isUniqueConstraintError(err error) bool {
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}
