package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"MatchServer/config"
	"MatchServer/model"
	"MatchServer/pkg/mysql"
	"MatchServer/pkg/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 构造一批演示用户与互动数据，本地联调用。
// 行为：
//  1. 清空现有数据
//  2. 创建取向标签字典与 20 个用户（主档 + 画像 + 隐私设置）
//  3. 随机生成喜欢边，约 1/3 构造双向喜欢并落配对行
func main() {
	db, err := mysql.Build(config.DefaultMySQLConfig())
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	if err := util.InitSnowflake(9); err != nil {
		log.Fatalf("failed to init snowflake: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	log.Println("Seeding completed.")
}

var cities = []string{"Berlin", "Hamburg", "Munich", "Cologne"}

var orientationNames = []string{"lesbian", "gay", "bisexual", "pansexual", "queer", "asexual"}

func seed(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// 清空现有数据（外键关系由低到高删除）
	for _, table := range []string{
		"chat_message", "user_match", "user_like", "user_block",
		"user_report", "profile_orientations", "privacy_settings",
		"user_profile", "orientation_tag", "user_info",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	// 取向标签字典
	tags := make([]model.OrientationTag, 0, len(orientationNames))
	for _, name := range orientationNames {
		tags = append(tags, model.OrientationTag{Name: name})
	}
	if err := db.Create(&tags).Error; err != nil {
		return fmt.Errorf("seed orientation tags: %w", err)
	}

	// 20 个用户：主档 + 画像 + 隐私设置
	uuids := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		uuid := util.NewUUID()
		uuids = append(uuids, uuid)

		user := model.UserInfo{
			Uuid:         uuid,
			Nickname:     fmt.Sprintf("demo-user-%02d", i),
			NotifyHandle: fmt.Sprintf("push:demo-%02d", i),
			Verified:     i%3 == 0,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		// 坐标撒在柏林市中心 ±0.2 度内，个别用户不填坐标
		lat := 52.52 + (r.Float64()-0.5)*0.4
		lon := 13.405 + (r.Float64()-0.5)*0.4
		age := 21 + r.Intn(30)
		profile := model.UserProfile{
			UserUuid:       uuid,
			Gender:         []string{"woman", "man", "nonbinary"}[r.Intn(3)],
			Pronouns:       []string{"she/her", "he/him", "they/them"}[r.Intn(3)],
			Bio:            fmt.Sprintf("demo bio for user %02d", i),
			City:           cities[r.Intn(len(cities))],
			WantFriendship: r.Intn(2) == 0,
			WantRomance:    r.Intn(2) == 0,
			WantPoly:       r.Intn(4) == 0,
			MaxDistanceKm:  float64(20 + r.Intn(80)),
			AgeRangeWidth:  3 + r.Intn(7),
			Orientations:   []model.OrientationTag{tags[r.Intn(len(tags))]},
		}
		if i%5 != 0 {
			profile.Latitude, profile.Longitude = &lat, &lon
			profile.Age = &age
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}

		settings := model.PrivacySettings{
			UserUuid:       uuid,
			ProfileVisible: true,
			HideDistance:   i%7 == 0,
			Incognito:      i == 20, // 留一个隐身用户验证候选池过滤
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	// 喜欢边与配对：每人随机喜欢 ~6 人，每第 3 条构造双向
	counter := 0
	for _, from := range uuids {
		for j := 0; j < 6; j++ {
			to := uuids[r.Intn(len(uuids))]
			if to == from {
				continue
			}

			like := model.UserLike{FromUuid: from, ToUuid: to}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}

			if counter%3 == 0 {
				reverse := model.UserLike{FromUuid: to, ToUuid: from}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&reverse).Error; err != nil {
					return fmt.Errorf("seed reverse like: %w", err)
				}

				low, high := model.CanonicalPair(from, to)
				match := model.UserMatch{Id: util.NextID(), UserLow: low, UserHigh: high}
				if err := db.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_low"}, {Name: "user_high"}},
					DoNothing: true,
				}).Create(&match).Error; err != nil {
					return fmt.Errorf("seed match: %w", err)
				}
			}
			counter++
		}
	}
	log.Printf("Seeded likes and matches (%d like attempts).", counter)

	return nil
}
