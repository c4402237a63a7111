package model

import (
	"time"

	"gorm.io/gorm"
)

// OrientationTag 取向标签字典表。
type OrientationTag struct {
	Id   int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Name string `gorm:"column:name;type:varchar(32);not null;uniqueIndex;comment:标签名"`
}

func (OrientationTag) TableName() string { return "orientation_tag" }

// UserProfile 用户资料，与 UserInfo 一对一。
// 坐标与年龄允许为空：缺失时筛选打分走兜底分而不是排除。
type UserProfile struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	UserUuid string `gorm:"column:user_uuid;type:char(36);not null;uniqueIndex;comment:用户uuid"`

	Pronouns string `gorm:"column:pronouns;type:varchar(32);comment:人称代词"`
	Gender   string `gorm:"column:gender;type:varchar(32);comment:性别"`
	Bio      string `gorm:"column:bio;type:varchar(512);comment:个人简介"`
	City     string `gorm:"column:city;type:varchar(64);comment:城市"`

	Latitude  *float64 `gorm:"column:latitude;comment:纬度"`
	Longitude *float64 `gorm:"column:longitude;comment:经度"`
	Age       *int     `gorm:"column:age;comment:年龄"`

	WantFriendship bool `gorm:"column:want_friendship;not null;default:0;comment:意向-交友"`
	WantRomance    bool `gorm:"column:want_romance;not null;default:0;comment:意向-恋爱"`
	WantPoly       bool `gorm:"column:want_poly;not null;default:0;comment:意向-多元关系"`

	MaxDistanceKm float64 `gorm:"column:max_distance_km;not null;default:0;comment:最大匹配距离(km),0表示未设置"`
	AgeRangeWidth int     `gorm:"column:age_range_width;not null;default:0;comment:年龄区间宽度,0表示未设置"`

	Orientations []OrientationTag `gorm:"many2many:profile_orientations;joinForeignKey:profile_id;joinReferences:tag_id"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (UserProfile) TableName() string { return "user_profile" }

// OrientationNames 返回取向标签名集合。
func (p *UserProfile) OrientationNames() []string {
	names := make([]string, 0, len(p.Orientations))
	for _, tag := range p.Orientations {
		names = append(names, tag.Name)
	}
	return names
}

// HasCoordinates 判断是否具备完整坐标。
func (p *UserProfile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
