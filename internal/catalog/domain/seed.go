package domain

// SeedCatalog は組み込みの初期カタログを返す。
// 永続化された状態が存在しない、または壊れている場合の復旧データとして使う。
// 呼び出しごとに独立したコピーを返すため、呼び出し側の編集が種データへ波及することはない。
func SeedCatalog() Catalog {
	return Catalog{
		{
			ID:          "tateyama",
			Name:        "館山店",
			Address:     "〒294-0045 千葉県館山市北条1017",
			Description: "館山裁判所前",
			Tel:         "0470-22-6808",
			Hours:       "平日7:30～19:00 / 祝日9:00～17:00",
			MapURL:      "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3265.845689539316!2d139.8656623!3d34.9980685!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x6017e8913996590b%3A0xc6c76615b8160913!2z5pyJ6ZmQ5Lya56S-44Ki44K344OO!5e0!3m2!1sja!2sjp!4v1700000000000!5m2!1sja!2sjp",
			Prices: map[FuelType]int{
				FuelRegular: 172,
				FuelDiesel:  152,
			},
			Discounts: map[FuelType]int{
				FuelRegular: 7,
				FuelDiesel:  7,
			},
		},
		{
			ID:          "miyoshi",
			Name:        "三芳店",
			Address:     "〒294-0822 千葉県南房総市本織370",
			Description: "三芳郵便局となり",
			Tel:         "0470-36-3466",
			Hours:       "平日7:30～19:00 / 祝日9:00～17:00",
			MapURL:      "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3264.4533134952445!2d139.89201557672224!3d35.03403337280338!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x6017e937d5303c73%3A0x696874837839352c!2z44CSMjk0LTA4MjIg5Y2D6JGJ55yM5Y2X5oi_57eP5biC5pys57mRMzcwaQ!5e0!3m2!1sja!2sjp!4v1716300000000!5m2!1sja!2sjp",
			Prices: map[FuelType]int{
				FuelRegular: 174,
				FuelDiesel:  154,
			},
			Discounts: map[FuelType]int{
				FuelRegular: 7,
				FuelDiesel:  7,
			},
		},
	}
}
